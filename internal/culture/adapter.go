// Package culture layers Sierra Leonean conversational texture onto
// generated responses: Krio greetings, proverbs, affirmations, and
// location-aware resource pointers.
package culture

import (
	"strings"

	"github.com/safespace-sl/safespace/internal/rng"
)

// Probabilities controls how often each independent layer is applied.
// Each value is a chance in [0, 1] rolled separately per response.
type Probabilities struct {
	Greeting    float64 `yaml:"greeting"`
	Proverb     float64 `yaml:"proverb"`
	Affirmation float64 `yaml:"affirmation"`
	Resource    float64 `yaml:"resource"`
}

// DefaultProbabilities is the tuning the product shipped with.
func DefaultProbabilities() Probabilities {
	return Probabilities{
		Greeting:    0.40,
		Proverb:     0.25,
		Affirmation: 0.30,
		Resource:    0.40,
	}
}

// Adapter decorates responses with cultural markers. It holds no
// per-conversation state and is safe for concurrent use.
type Adapter struct {
	rand  rng.Rand
	probs Probabilities
}

// New returns an Adapter rolling against the given probabilities.
func New(r rng.Rand, probs Probabilities) *Adapter {
	return &Adapter{rand: r, probs: probs}
}

// Adapt applies each cultural layer to base with its configured
// probability. When direct is true (crisis or emergency traffic) the
// base text passes through untouched so safety instructions stay
// unambiguous. Location gates the resource layer: no location, no
// resource pointer.
func (a *Adapter) Adapt(base, location string, direct bool) string {
	if direct {
		return base
	}

	if a.rand.Float64() < a.probs.Greeting {
		base = a.pick(greetings) + " " + base
	}

	if a.rand.Float64() < a.probs.Proverb {
		base = base + " Remember, " + strings.ToLower(a.pick(proverbs))
	}

	if a.rand.Float64() < a.probs.Affirmation {
		base = base + " " + a.pick(affirmations)
	}

	if location != "" && a.rand.Float64() < a.probs.Resource {
		resources := LocalResources(location)
		// Only the two best-known facilities are surfaced inline.
		resource := resources[a.rand.IntN(min(2, len(resources)))]
		base = base + " Local support available at " + resource + "."
	}

	return base
}

// LocalResources returns the support facilities for a user location.
// Freetown (and its Krio spelling) maps to the capital's facilities;
// everywhere else gets the provincial hospitals.
func LocalResources(location string) []string {
	loc := strings.ToLower(location)
	if strings.Contains(loc, "freetown") || strings.Contains(loc, "fritong") {
		return freetownResources
	}
	return provinceResources
}

// EmergencyResources returns the fixed crisis contact directory.
func EmergencyResources() map[string]string {
	out := make(map[string]string, len(emergencyResources))
	for k, v := range emergencyResources {
		out[k] = v
	}
	return out
}

func (a *Adapter) pick(pool []string) string {
	return pool[a.rand.IntN(len(pool))]
}
