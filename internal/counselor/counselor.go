// Package counselor orchestrates a single message exchange: intent
// classification, emergency handling, knowledge retrieval, the provider
// cascade with its deterministic template fallback, cultural
// adaptation, conversation memory, and asynchronous summarization.
package counselor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/safespace-sl/safespace/internal/culture"
	"github.com/safespace-sl/safespace/internal/intent"
	"github.com/safespace-sl/safespace/internal/knowledge"
	"github.com/safespace-sl/safespace/internal/memory"
	"github.com/safespace-sl/safespace/internal/provider"
	"github.com/safespace-sl/safespace/internal/respond"
	"github.com/safespace-sl/safespace/internal/rng"
)

// ErrEmptyUserID is returned when ProcessMessage is called without a
// user. Provider and retrieval failures never surface as errors.
var ErrEmptyUserID = errors.New("empty user id")

// FactSearcher retrieves knowledge snippets for a query. Satisfied by
// *knowledge.Retriever.
type FactSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]knowledge.Fact, error)
}

// Context carries the per-request user attributes. Explicit values take
// precedence over the stored profile.
type Context struct {
	Topic    string `json:"topic,omitempty"`
	Location string `json:"location,omitempty"`
	Gender   string `json:"gender,omitempty"`
	AgeGroup string `json:"age_group,omitempty"`
}

// Reply is the outcome of one processed message.
type Reply struct {
	Response         string    `json:"response"`
	IsEmergency      bool      `json:"is_emergency"`
	RequiresFollowup bool      `json:"requires_followup"`
	Resources        []string  `json:"resources"`
	Confidence       int       `json:"confidence"`
	Timestamp        time.Time `json:"timestamp"`
}

// Config holds the orchestrator tuning knobs.
type Config struct {
	// HistoryWindow is how many recent stored messages feed the
	// provider prompt.
	HistoryWindow int `yaml:"history_window"`

	// FactLimit is the knowledge retrieval top-k.
	FactLimit int `yaml:"fact_limit"`

	// FollowupProbability is the chance of appending a follow-up
	// question to a non-crisis reply.
	FollowupProbability float64 `yaml:"followup_probability"`

	// BackRefProbability is the chance of referencing an earlier
	// conversation topic.
	BackRefProbability float64 `yaml:"backref_probability"`

	// SummaryThreshold is the unsummarized-message count beyond which
	// asynchronous summarization runs for non-guest users.
	SummaryThreshold int `yaml:"summary_threshold"`
}

// Defaults fills zero-valued fields with the shipped tuning.
func (c *Config) Defaults() {
	if c.HistoryWindow == 0 {
		c.HistoryWindow = 10
	}
	if c.FactLimit == 0 {
		c.FactLimit = knowledge.DefaultLimit
	}
	if c.FollowupProbability == 0 {
		c.FollowupProbability = 0.4
	}
	if c.BackRefProbability == 0 {
		c.BackRefProbability = 0.3
	}
	if c.SummaryThreshold == 0 {
		c.SummaryThreshold = 15
	}
}

// Counselor is the top-level message processor. All dependencies are
// injected; only the cascade and template generator are mandatory.
type Counselor struct {
	config     Config
	classifier *intent.Classifier
	generator  *respond.Generator
	adapter    *culture.Adapter
	cascade    *provider.Cascade
	retriever  FactSearcher
	history    memory.HistoryStore
	summaries  memory.SummaryStore
	profiles   memory.ProfileStore
	convo      *memory.ConversationMemory
	rand       rng.Rand
	logger     *slog.Logger

	// tracks in-flight summarization tasks so Close can drain them.
	tasks sync.WaitGroup
}

// Deps bundles the orchestrator dependencies.
type Deps struct {
	Classifier *intent.Classifier
	Generator  *respond.Generator
	Adapter    *culture.Adapter
	Cascade    *provider.Cascade
	Retriever  FactSearcher
	History    memory.HistoryStore
	Summaries  memory.SummaryStore
	Profiles   memory.ProfileStore
	Rand       rng.Rand
	Logger     *slog.Logger
}

// New returns a Counselor wired from deps.
func New(cfg Config, deps Deps) (*Counselor, error) {
	cfg.Defaults()
	if deps.Cascade == nil {
		return nil, errors.New("counselor: cascade is required")
	}
	if deps.Generator == nil {
		return nil, errors.New("counselor: generator is required")
	}

	c := &Counselor{
		config:     cfg,
		classifier: deps.Classifier,
		generator:  deps.Generator,
		adapter:    deps.Adapter,
		cascade:    deps.Cascade,
		retriever:  deps.Retriever,
		history:    deps.History,
		summaries:  deps.Summaries,
		profiles:   deps.Profiles,
		convo:      memory.NewConversationMemory(),
		rand:       deps.Rand,
		logger:     deps.Logger,
	}
	if c.classifier == nil {
		c.classifier = intent.New()
	}
	if c.rand == nil {
		c.rand = rng.Default()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.adapter == nil {
		c.adapter = culture.New(c.rand, culture.DefaultProbabilities())
	}
	return c, nil
}

// Close waits for in-flight summarization tasks to finish.
func (c *Counselor) Close() {
	c.tasks.Wait()
}

// ProcessMessage handles one inbound message end to end and always
// produces a response: provider and knowledge failures degrade to the
// template generator, never to an error.
func (c *Counselor) ProcessMessage(ctx context.Context, message, userID string, reqCtx Context) (Reply, error) {
	if userID == "" {
		return Reply{}, ErrEmptyUserID
	}

	profile := c.loadProfile(ctx, userID)
	merged := mergeContext(reqCtx, profile)

	res := c.classifier.Classify(message)
	isEmergency := res.IsEmergency()
	isCrisis := res.IsCrisis()
	direct := isEmergency || isCrisis

	var response string
	switch {
	case isEmergency:
		response = c.generator.Response(intent.Emergency, message, nil)
	case isCrisis:
		response = c.generator.Response(intent.Crisis, message, nil)
	case respond.IsAdviceRequest(message):
		response = c.generator.Advice(c.adviceTopic(userID, merged, res))
	default:
		response = c.normalResponse(ctx, message, userID, profile, res)
	}

	response = c.adapter.Adapt(response, merged.Location, direct)
	response = personalizeGender(response, merged.Gender)

	if !direct {
		response = c.maybeBackReference(userID, message, response)
	}

	c.convo.Add(userID, message, response)
	c.persistExchange(ctx, userID, message, response)

	followup := false
	if !direct && c.rand.Float64() < c.config.FollowupProbability {
		response += " " + c.pick(followUps)
		followup = true
	}

	c.maybeSummarize(userID, profile)

	return Reply{
		Response:         response,
		IsEmergency:      isEmergency,
		RequiresFollowup: followup,
		Resources:        SuggestedResources(res.Primary, merged.Location),
		Confidence:       res.Confidence,
		Timestamp:        time.Now().UTC(),
	}, nil
}

// normalResponse runs the full retrieval + cascade path, falling back
// to the template generator when every provider fails.
func (c *Counselor) normalResponse(ctx context.Context, message, userID string, profile memory.Profile, res intent.Result) string {
	facts := c.retrieveFacts(ctx, message)

	req := provider.Request{
		Prompt:            message,
		SystemInstruction: c.systemInstruction(ctx, userID, profile),
		Facts:             facts,
		History:           c.recentHistory(ctx, userID),
	}

	result := c.cascade.Generate(ctx, req)
	if result.Success {
		c.logger.Debug("cascade produced response",
			slog.String("provider", result.Provider),
			slog.String("user_id", userID))
		return result.Response
	}

	c.logger.Warn("cascade exhausted, using template generator",
		slog.String("user_id", userID),
		slog.Any("error", result.Err))
	return c.generator.Response(res.Primary, message, facts)
}

// retrieveFacts is best-effort: any failure means no facts.
func (c *Counselor) retrieveFacts(ctx context.Context, message string) []string {
	if c.retriever == nil {
		return nil
	}
	hits, err := c.retriever.Search(ctx, message, c.config.FactLimit)
	if err != nil {
		c.logger.Warn("knowledge retrieval failed", slog.Any("error", err))
		return nil
	}
	facts := make([]string, len(hits))
	for i, hit := range hits {
		facts[i] = hit.Content
	}
	return facts
}

// recentHistory converts stored messages into provider turns.
func (c *Counselor) recentHistory(ctx context.Context, userID string) []provider.Turn {
	if c.history == nil {
		return nil
	}
	msgs, err := c.history.Recent(ctx, userID, c.config.HistoryWindow)
	if err != nil {
		c.logger.Warn("history read failed", slog.Any("error", err))
		return nil
	}
	turns := make([]provider.Turn, len(msgs))
	for i, msg := range msgs {
		role := provider.RoleUser
		if msg.Sender == memory.SenderCounselor {
			role = provider.RoleCounselor
		}
		turns[i] = provider.Turn{Role: role, Content: msg.Content}
	}
	return turns
}

// persistExchange appends both halves of the exchange to durable
// history. Failures are logged, not returned: a storage hiccup must
// not lose the reply.
func (c *Counselor) persistExchange(ctx context.Context, userID, message, response string) {
	if c.history == nil {
		return
	}
	pairs := []memory.Message{
		{UserID: userID, Content: message, Sender: memory.SenderUser},
		{UserID: userID, Content: response, Sender: memory.SenderCounselor},
	}
	for _, msg := range pairs {
		if err := c.history.Append(ctx, msg); err != nil {
			c.logger.Warn("history append failed",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
	}
}

// adviceTopic picks the subject for an explicit advice request:
// conversation memory first, then the profile topic, then the
// classified intent.
func (c *Counselor) adviceTopic(userID string, merged Context, res intent.Result) string {
	if topics := c.convo.Topics(userID); len(topics) > 0 {
		return topics[0]
	}
	if merged.Topic != "" {
		return merged.Topic
	}
	return res.Primary
}

// maybeBackReference occasionally ties the reply to a topic from
// earlier in the conversation, unless the reply already mentions one.
func (c *Counselor) maybeBackReference(userID, message, response string) string {
	topics := c.convo.Topics(userID)
	if len(topics) == 0 || c.rand.Float64() >= c.config.BackRefProbability {
		return response
	}

	lower := strings.ToLower(response)
	for _, topic := range topics {
		if strings.Contains(lower, topic) {
			return response
		}
	}

	ref, ok := backReferences[topics[0]]
	if !ok || c.rand.Float64() >= 0.5 {
		return response
	}
	return response + " " + ref
}

func (c *Counselor) loadProfile(ctx context.Context, userID string) memory.Profile {
	if c.profiles == nil {
		return memory.Profile{}
	}
	profile, err := c.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, memory.ErrNotFound) {
			c.logger.Warn("profile read failed",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
		return memory.Profile{}
	}
	return profile
}

func (c *Counselor) pick(pool []string) string {
	return pool[c.rand.IntN(len(pool))]
}

// mergeContext applies precedence: explicit request values beat the
// stored profile.
func mergeContext(reqCtx Context, profile memory.Profile) Context {
	merged := reqCtx
	if merged.Topic == "" {
		merged.Topic = profile.Topic
	}
	if merged.Location == "" {
		merged.Location = profile.Location
	}
	if merged.Gender == "" {
		merged.Gender = profile.Gender
	}
	return merged
}

// personalizeGender rewrites the generic "my brother/sister" address
// once the user's gender is known.
func personalizeGender(response, gender string) string {
	switch gender {
	case "male":
		return strings.ReplaceAll(response, "my brother/sister", "my brother")
	case "female":
		return strings.ReplaceAll(response, "my brother/sister", "my sister")
	default:
		return response
	}
}

var followUps = []string{
	"How does that make you feel?",
	"Can you tell me more about that?",
	"What happened next?",
	"How long have you felt this way?",
	"What do you think would help?",
	"What's been most difficult about this?",
	"Who in your life knows about this?",
}

var backReferences = map[string]string{
	"work":         "Earlier you mentioned work - is this related?",
	"family":       "You mentioned family before - is this connected?",
	"relationship": "This seems related to what you said about your relationship earlier.",
	"health":       "Is this related to the health concerns you mentioned?",
	"financial":    "This connects to the money worries you shared earlier.",
}
