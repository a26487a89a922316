// Package respond implements the rule-based response generator: the
// guaranteed last resort of the response pipeline. It has no external
// dependencies and cannot fail, which is what makes "always respond"
// a hard invariant upstream. Content is dispatched by intent, refined
// by per-intent trigger tables, and enriched with retrieved facts.
package respond

import (
	"strings"

	"github.com/safespace-sl/safespace/internal/intent"
	"github.com/safespace-sl/safespace/internal/rng"
)

// Generator produces counselor responses from intent and message text.
// Randomized pool selection exists to avoid robotic repetition across
// sessions; emergency and crisis text is fixed and never randomized.
type Generator struct {
	rand rng.Rand
}

// New returns a Generator using the given randomness source. A nil
// source falls back to an auto-seeded default.
func New(r rng.Rand) *Generator {
	if r == nil {
		r = rng.Default()
	}
	return &Generator{rand: r}
}

// Response builds the base response for the classified intent. When
// facts are present they are woven into the text via fact synthesis
// rather than appended verbatim.
func (g *Generator) Response(intentName, message string, facts []string) string {
	lower := strings.ToLower(message)

	var base string
	switch intentName {
	case intent.Greeting:
		base = g.greeting(lower)
	case intent.Emergency:
		base = EmergencyResponse()
	case intent.Crisis:
		base = CrisisResponse()
	case intent.Trauma:
		base = firstTriggered(traumaResponses, lower, traumaFallback)
	case intent.Anxiety:
		base = firstTriggered(anxietyResponses, lower, anxietyFallback)
	case intent.Depression:
		base = depressionResponse
	case intent.Addiction:
		base = firstTriggered(addictionResponses, lower, addictionFallback)
	case intent.Grief:
		base = griefResponse
	case intent.Spiritual:
		base = firstTriggered(spiritualResponses, lower, spiritualFallback)
	case intent.Relationships:
		base = relationshipResponse
	case intent.Practical:
		base = practicalResponse
	case intent.Health:
		base = healthResponse
	default:
		base = g.pick(generalResponses)
	}

	if len(facts) > 0 {
		return g.synthesizeFacts(base, facts, intentName)
	}
	return base
}

// EmergencyResponse returns the fixed directive text for emergencies.
// It lists concrete immediate steps and is deliberately not randomized
// or embellished: reliability of crisis instructions is safety-critical.
func EmergencyResponse() string {
	return emergencyResponse
}

// CrisisResponse returns the fixed de-escalation text for crisis
// messages short of an emergency.
func CrisisResponse() string {
	return crisisResponse
}

// IsAdviceRequest reports whether the message is asking for concrete
// guidance rather than sharing an experience. Advice requests bypass
// intent dispatch and get a numbered action-step list instead.
func IsAdviceRequest(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "what do you advise") ||
		strings.Contains(lower, "what should i do") ||
		strings.Contains(lower, "what can i do") ||
		strings.Contains(lower, "how can you help")
}

// greeting answers Krio greetings in kind and picks a random opener for
// everything else.
func (g *Generator) greeting(lower string) string {
	if strings.Contains(lower, "na so") || strings.Contains(lower, "kushe") ||
		strings.Contains(lower, "how de") || strings.Contains(lower, "how you dey") {
		return krioGreetingResponse
	}
	return g.pick(greetingResponses)
}

// pick selects uniformly from a non-empty pool.
func (g *Generator) pick(pool []string) string {
	return pool[g.rand.IntN(len(pool))]
}

// triggered pairs an ordered keyword list with the response used when
// any keyword appears in the message.
type triggered struct {
	triggers []string
	response string
}

// firstTriggered returns the response of the first entry whose trigger
// matches, or the fallback when none do. Order matters: more specific
// entries come first in each table.
func firstTriggered(table []triggered, lower, fallback string) string {
	for _, t := range table {
		for _, trigger := range t.triggers {
			if strings.Contains(lower, trigger) {
				return t.response
			}
		}
	}
	return fallback
}
