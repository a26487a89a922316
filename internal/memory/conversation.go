package memory

import (
	"strings"
	"sync"
	"time"
)

// maxTurns bounds the per-user turn cache. Older turns are evicted
// first; durable history lives in the HistoryStore.
const maxTurns = 10

// Turn is one exchange held in the in-process conversation cache.
type Turn struct {
	Message   string
	Response  string
	Timestamp time.Time
}

// ConversationMemory keeps the last few turns per user in process
// memory so the counselor can reference earlier topics without a
// storage round-trip. It is loss-tolerant: a restart empties it and
// nothing breaks.
type ConversationMemory struct {
	mu    sync.Mutex
	turns map[string][]Turn
}

// NewConversationMemory returns an empty cache.
func NewConversationMemory() *ConversationMemory {
	return &ConversationMemory{turns: make(map[string][]Turn)}
}

// Add records a completed exchange, evicting the oldest turn once the
// user's window is full.
func (c *ConversationMemory) Add(userID, message, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	turns := append(c.turns[userID], Turn{
		Message:   message,
		Response:  response,
		Timestamp: time.Now(),
	})
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	c.turns[userID] = turns
}

// Turns returns the user's cached turns oldest-first.
func (c *ConversationMemory) Turns(userID string) []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Turn, len(c.turns[userID]))
	copy(out, c.turns[userID])
	return out
}

// Reset drops the user's cached turns, e.g. at the start of a new
// session.
func (c *ConversationMemory) Reset(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.turns, userID)
}

// topicKeywords maps conversation topics to the words that signal them.
var topicKeywords = map[string][]string{
	"trauma":       {"trauma", "traumatic", "accident", "crash", "ptsd", "flashback", "nightmare"},
	"addiction":    {"addiction", "addicted", "kush", "tramadol", "drug", "alcohol", "substance"},
	"anxiety":      {"anxious", "anxiety", "worried", "nervous", "panic", "stress"},
	"depression":   {"depressed", "sad", "hopeless", "down", "empty"},
	"grief":        {"grief", "grieving", "death", "died", "loss", "mourning"},
	"work":         {"work", "job", "boss", "office"},
	"family":       {"family", "parent", "mother", "father"},
	"relationship": {"partner", "boyfriend", "girlfriend", "spouse"},
	"health":       {"sick", "ill", "pain", "health"},
	"financial":    {"money", "financial", "bills", "debt"},
}

// topicOrder fixes the scan order so Topics is deterministic.
var topicOrder = []string{
	"trauma", "addiction", "anxiety", "depression", "grief",
	"work", "family", "relationship", "health", "financial",
}

// Topics extracts the conversation topics mentioned across the user's
// cached messages, in a fixed priority order.
func (c *ConversationMemory) Topics(userID string) []string {
	turns := c.Turns(userID)
	messages := make([]string, len(turns))
	for i, t := range turns {
		messages[i] = t.Message
	}
	return ExtractTopics(messages)
}

// ExtractTopics reports which known topics appear in the given
// messages.
func ExtractTopics(messages []string) []string {
	all := strings.ToLower(strings.Join(messages, " "))

	var topics []string
	for _, topic := range topicOrder {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(all, kw) {
				topics = append(topics, topic)
				break
			}
		}
	}
	return topics
}
