package respond

import "github.com/safespace-sl/safespace/internal/intent"

// Advice returns a numbered action-step list for an explicit advice
// request, keyed by the most recently discussed topic or the user's
// profile topic. Unknown topics get the generic list.
func (g *Generator) Advice(topic string) string {
	switch topic {
	case intent.Trauma:
		return "After trauma, here's what I advise: 1) Talk to someone you trust - family or a community member who understands, 2) Practice grounding when you feel overwhelmed - notice 5 things you can see, 4 you can touch, 3 you can hear, 3) Consider connecting with trauma support groups through the Mental Health Coalition, 4) Be patient with yourself - healing takes time, 5) If memories are too overwhelming, consider professional help at Kissy Hospital or RAIC. What feels most helpful for you right now?"
	case intent.Addiction:
		return "For addiction recovery, here's my advice: 1) Reach out to family - their support is crucial for recovery in Sierra Leone, 2) Contact NACOB at 079-797979 for free counseling and support, 3) Avoid situations and people that trigger substance use, 4) Connect with faith-based recovery groups or community programs if available, 5) Take it one day at a time - recovery is a journey. Remember, you don't have to do this alone. What's your first step?"
	default:
		return "Here's what I advise: 1) Talk to someone you trust - family or community member, 2) Consider local support resources like community elders or health centers, 3) Take things one day at a time, 4) Be kind to yourself - you're doing the best you can, 5) Don't hesitate to seek professional help if needed. What specific challenge are you facing right now?"
	}
}
