package knowledge

import (
	"github.com/google/uuid"

	"github.com/safespace-sl/safespace/internal/memory"
)

// StarterCorpus returns the initial set of Sierra Leone support facts
// loaded by the seed command. IDs are generated fresh per call.
func StarterCorpus() []memory.Fact {
	entries := []struct {
		content  string
		metadata map[string]string
	}{
		{
			content:  "RAIC (Rainbo Initiative) in Freetown offers confidential support for sexual violence. You can reach them at 0800-33333.",
			metadata: map[string]string{"category": "trauma", "subcategory": "sexual_violence", "location": "Freetown"},
		},
		{
			content:  "National Emergency Services in Sierra Leone are available 24/7 by calling 116.",
			metadata: map[string]string{"category": "emergency"},
		},
		{
			content:  "The Mental Health Helpline in Sierra Leone is 919.",
			metadata: map[string]string{"category": "emergency", "subcategory": "mental_health"},
		},
		{
			content:  "Kissy Psychiatric Hospital in Freetown provides 24/7 emergency care for mental health crises.",
			metadata: map[string]string{"category": "emergency", "subcategory": "clinical", "location": "Freetown"},
		},
		{
			content:  "For suicide prevention, text 'HELP' to 8787 in Sierra Leone.",
			metadata: map[string]string{"category": "emergency", "subcategory": "suicide_prevention"},
		},
		{
			content:  "The Ministry of Social Welfare in Sierra Leone offers temporary assistance programs for those in financial distress.",
			metadata: map[string]string{"category": "practical", "subcategory": "financial_aid"},
		},
		{
			content:  "NACOB (National Drug Control Board) offers free counseling for addiction. They can be reached at 079-797979.",
			metadata: map[string]string{"category": "addiction", "location": "Sierra Leone"},
		},
		{
			content:  "The Mental Health Coalition in Sierra Leone provides support for war-affected individuals and trauma survivors.",
			metadata: map[string]string{"category": "trauma", "subcategory": "war"},
		},
		{
			content:  "YWCA in Freetown offers skills training programs which can help with economic stress and unemployment.",
			metadata: map[string]string{"category": "practical", "subcategory": "employment", "location": "Freetown"},
		},
		{
			content:  "Spiritual concerns can be addressed through religious leaders at the Central Mosque or St. George's Cathedral in Freetown.",
			metadata: map[string]string{"category": "spiritual", "location": "Freetown"},
		},
	}

	facts := make([]memory.Fact, len(entries))
	for i, e := range entries {
		facts[i] = memory.Fact{
			ID:       uuid.NewString(),
			Content:  e.content,
			Metadata: e.metadata,
		}
	}
	return facts
}
