// Package intent scores incoming messages against per-category keyword
// sets to classify the user's topic and urgency. Classification is a
// pure function over the keyword table: no I/O, no hidden state.
package intent

import (
	"sort"
	"strings"
)

// Intent names produced by the classifier. Emergency and Crisis drive
// the orchestrator's short-circuit paths; General is the no-match
// default.
const (
	Emergency     = "emergency"
	Crisis        = "crisis"
	Greeting      = "greeting"
	Trauma        = "trauma"
	Anxiety       = "anxiety"
	Depression    = "depression"
	Addiction     = "addiction"
	Grief         = "grief"
	Relationships = "relationships"
	Practical     = "practical"
	Spiritual     = "spiritual"
	Health        = "health"
	General       = "general"
)

// Score boosts applied per keyword hit so that even a single emergency
// match outranks any accumulation of ordinary intents.
const (
	emergencyBoost = 10
	crisisBoost    = 5
)

// Result is the outcome of classifying one message.
type Result struct {
	// Primary is the highest-scoring intent, or General when nothing
	// matched.
	Primary string

	// Confidence is the raw score of the primary intent.
	Confidence int

	// Secondary holds up to the next two intents by score.
	Secondary []string
}

// IsEmergency reports whether the message requires the emergency
// short-circuit: an explicit emergency match, or any score high enough
// that only boosted keywords could have produced it.
func (r Result) IsEmergency() bool {
	return r.Primary == Emergency || r.Confidence > 5
}

// IsCrisis reports whether the message requires the crisis path.
func (r Result) IsCrisis() bool {
	return r.Primary == Crisis || r.Confidence > 3
}

// Classifier scores messages against its keyword table. The zero value
// is not usable; construct with New.
type Classifier struct {
	keywords map[string][]string
}

// New returns a Classifier with the built-in keyword table.
func New() *Classifier {
	return &Classifier{keywords: intentKeywords}
}

// Classify scores the message against every intent category and returns
// the ranked result. Matching is case-insensitive substring matching;
// multiple hits within one category accumulate, there is no early exit.
// An empty or matchless message yields General with confidence 0.
func (c *Classifier) Classify(message string) Result {
	lower := strings.ToLower(message)

	type scored struct {
		intent string
		score  int
	}
	var scores []scored

	for name, words := range c.keywords {
		score := 0
		for _, kw := range words {
			if !strings.Contains(lower, kw) {
				continue
			}
			score++
			switch name {
			case Emergency:
				score += emergencyBoost
			case Crisis:
				score += crisisBoost
			}
		}
		if score > 0 {
			scores = append(scores, scored{intent: name, score: score})
		}
	}

	if len(scores) == 0 {
		return Result{Primary: General}
	}

	// Stable rank: score descending, then name for determinism when
	// scores tie (map iteration order must not leak into results).
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].intent < scores[j].intent
	})

	res := Result{
		Primary:    scores[0].intent,
		Confidence: scores[0].score,
	}
	for _, s := range scores[1:] {
		if len(res.Secondary) == 2 {
			break
		}
		res.Secondary = append(res.Secondary, s.intent)
	}
	return res
}
