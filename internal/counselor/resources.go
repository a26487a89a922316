package counselor

import "github.com/safespace-sl/safespace/internal/culture"

// intentResources maps each intent to the Sierra Leone services worth
// suggesting alongside the reply.
var intentResources = map[string][]string{
	"emergency":     {"116 Emergency", "919 Mental Health Helpline", "Kissy Hospital (24/7)"},
	"crisis":        {"919 Mental Health Helpline", "Kissy Hospital", "Call 116"},
	"trauma":        {"RAIC Support Groups", "Mental Health Coalition SL", "Trauma Healing Workshops"},
	"addiction":     {"NACOB Helpline - 079-797979", "Drug Rehabilitation Centers", "Faith-based Recovery"},
	"anxiety":       {"Breathing Exercises", "Community Support Groups", "YWCA Skills Training"},
	"depression":    {"Mental Health Coalition", "Community Support", "Ministry of Health Services"},
	"grief":         {"Community Elders", "Funeral Traditions", "Spiritual Leaders"},
	"relationships": {"Family Mediation", "Community Elders", "Religious Counselors"},
	"practical":     {"Ministry of Social Welfare", "Local NGOs", "Community Resources"},
	"health":        {"Connaught Hospital", "Local Health Centers", "Traditional Healers"},
}

var genericResources = []string{"Ministry of Health Hotline", "Local Health Center"}

// maxResources caps the suggestion list.
const maxResources = 5

// SuggestedResources returns the service suggestions for an intent,
// extended with up to two location-specific entries when the user's
// location is known. The list never exceeds maxResources.
func SuggestedResources(intentName, location string) []string {
	base, ok := intentResources[intentName]
	if !ok {
		base = genericResources
	}

	out := make([]string, len(base))
	copy(out, base)

	if location != "" {
		local := culture.LocalResources(location)
		if len(local) > 2 {
			local = local[:2]
		}
		out = append(out, local...)
	}

	if len(out) > maxResources {
		out = out[:maxResources]
	}
	return out
}
