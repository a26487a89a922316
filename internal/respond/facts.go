package respond

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/safespace-sl/safespace/internal/intent"
)

// phonePattern matches local phone-number shapes: 3-4 digits, optional
// separator, 3-6 digits (079-797979, 0800 33333), or a bare 3-digit
// short code (116, 919).
var phonePattern = regexp.MustCompile(`\d{3,4}[-\s]?\d{3,6}|\b\d{3}\b`)

// orgPattern matches organization names the generator knows how to talk
// about. Kept in sync with the enhancement rules in synthesizeFacts.
var orgPattern = regexp.MustCompile(`(?i)RAIC|NACOB|Rainbo Initiative|Kissy|Mental Health Helpline|Central Mosque|St\. George's`)

// synthesizeFacts weaves retrieved knowledge into the base response.
// The contract is "integrate the single most relevant fact fluently",
// not fact dumping: only a recognized intent/organization/number
// combination produces a specific sentence, and anything else collapses
// to a content-neutral acknowledgment that resources exist.
func (g *Generator) synthesizeFacts(base string, facts []string, intentName string) string {
	var phones, orgs []string
	for _, fact := range facts {
		phones = append(phones, phonePattern.FindAllString(fact, -1)...)
		orgs = append(orgs, orgPattern.FindAllString(fact, -1)...)
	}

	if enhancement := enhancementFor(intentName, phones, orgs); enhancement != "" {
		return base + enhancement
	}

	// Facts were retrieved but none could be integrated cleanly.
	return base + "\n\nThere are also resources available that can help. Would you like to know more about them?"
}

// enhancementFor returns the intent-specific sentence for a recognized
// fact combination, or "" when nothing fits.
func enhancementFor(intentName string, phones, orgs []string) string {
	switch intentName {
	case intent.Addiction:
		if !containsFold(orgs, "NACOB") {
			return ""
		}
		if phone := findPhone(phones, "079", "797979"); phone != "" {
			return fmt.Sprintf("\n\nThe National Drug Control Board (NACOB) offers free, confidential addiction counseling. You can reach them at %s. They understand what you're going through and want to help.", phone)
		}
	case intent.Trauma:
		if !containsFold(orgs, "RAIC") && !containsFold(orgs, "Rainbo Initiative") {
			return ""
		}
		if phone := findPhone(phones, "0800", "33333"); phone != "" {
			return fmt.Sprintf("\n\nIf you've experienced trauma or violence, the Rainbo Initiative (RAIC) in Freetown provides confidential, compassionate support. You can call them anytime at %s. You're not alone.", phone)
		}
	case intent.Crisis, intent.Anxiety:
		if findPhone(phones, "919") != "" {
			return "\n\nThe Mental Health Helpline (919) is available if you need immediate support. It's free, confidential, and staffed by people who care."
		}
	case intent.Spiritual:
		if len(orgs) > 0 {
			return "\n\nMany in Sierra Leone find strength through faith. Spiritual leaders at the Central Mosque or St. George's Cathedral can offer guidance and community support."
		}
	}
	return ""
}

// findPhone returns the first extracted number containing any of the
// given digit fragments.
func findPhone(phones []string, fragments ...string) string {
	for _, p := range phones {
		for _, frag := range fragments {
			if strings.Contains(p, frag) {
				return p
			}
		}
	}
	return ""
}

// containsFold reports whether any entry equals s case-insensitively.
func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
