package respond

// Fixed safety-critical texts. These must stay deterministic: the
// numbers and facility names are the product's crisis protocol.
const emergencyResponse = `🚨 URGENT: I hear you're in crisis.

IMMEDIATE STEPS:
1. CALL 116 - National Emergency Services (available 24/7)
2. CALL 919 - Mental Health Helpline
3. Go to Kissy Psychiatric Hospital (24/7 emergency)
4. Text "HELP" to 8787 for suicide prevention

You are not alone. Help is available NOW. Your life has value, and there are people who want to support you. Please reach out immediately.`

const crisisResponse = "I hear you're in crisis right now. This feels overwhelming, but it will pass. Take slow, deep breaths. Focus on getting through the next few minutes. Would it help to talk to someone right now? You can call 919 or go to Kissy Hospital. I'm here to listen too."

const krioGreetingResponse = "Na so! I dey fine, thank you. How you dey? I'm here to listen and support you. Wetin dey worry you today?"

// greetingResponses are semantically equivalent openers; one is picked
// uniformly at random per greeting.
var greetingResponses = []string{
	"Hello! I'm glad you reached out. I'm here to listen and support you. What's on your mind today?",
	"Hi there. Thank you for coming to your safe space. How are you feeling?",
	"Welcome. I'm here to help. What would you like to talk about?",
	"Hello! It takes courage to reach out. I'm here for you. How can I support you today?",
}

var generalResponses = []string{
	"I hear you. Whatever you're going through, it's okay to talk about it. What's been weighing on your mind lately?",
	"Thank you for sharing that with me. I'm here to listen. Can you tell me a bit more about what you're experiencing?",
	"It sounds like you have something important to discuss. I'm here to support you. What would help you most right now?",
	"I appreciate you reaching out. Many people in Sierra Leone face challenges, and talking about them is a sign of strength. How can I best support you?",
}

// Per-intent trigger tables. The first entry whose trigger appears in
// the message wins; order goes from most to least specific.

var traumaResponses = []triggered{
	{
		triggers: []string{"sexual", "assault", "abuse", "violence"},
		response: "I'm deeply sorry this happened to you. What you experienced was not your fault. RAIC in Freetown offers confidential support and can help. You can reach them at 0800-33333. Your healing matters, and you deserve support.",
	},
	{
		triggers: []string{"flashback", "nightmare", "ptsd"},
		response: "Flashbacks and nightmares can make you feel like you're reliving difficult experiences. Grounding techniques can help - focus on 5 things you can see, 4 you can touch, 3 you can hear. You're safe in this moment, even if it doesn't feel like it.",
	},
	{
		triggers: []string{"accident", "crash", "injured", "hospitalized"},
		response: "Accidents can be really traumatic, especially if you were injured. It's normal to feel shaken up, scared, or keep replaying what happened. Have you been able to talk to family or friends about what happened? Sometimes sharing the experience helps process it.",
	},
	{
		triggers: []string{"trauma", "traumatic", "past", "memories"},
		response: "Difficult experiences from the past can affect us deeply. Healing takes time, and it's different for everyone. Have you considered talking to a counselor or someone you trust? You don't have to carry this alone.",
	},
}

const traumaFallback = "Trauma changes how we see the world. Have you connected with the Mental Health Coalition's trauma support groups? Many Sierra Leoneans carry trauma, and healing happens in community. You don't have to carry this alone."

var anxietyResponses = []triggered{
	{
		triggers: []string{"money", "job", "unemployed", "poverty"},
		response: "The stress of making ends meet in Freetown is real. Have you explored skills training programs at the YWCA or other NGOs? The Ministry of Social Welfare also has temporary assistance programs. You're not alone in this struggle.",
	},
	{
		triggers: []string{"school", "exam", "education", "university"},
		response: "Academic pressure can feel overwhelming. Many students at Fourah Bay College face similar stress. What study methods have worked for you before? Sometimes breaking study time into smaller chunks helps manage the anxiety.",
	},
	{
		triggers: []string{"family", "parents", "pressure", "expectations"},
		response: "Family expectations can feel heavy, especially as the first to go to school. How can you balance their hopes with your own wellbeing? Remember, your mental health matters just as much as your success.",
	},
}

const anxietyFallback = "Anxiety can feel overwhelming. Try the 4-7-8 breathing: breathe in for 4, hold for 7, exhale for 8. In Sierra Leone, many find comfort in connecting with family, community, or spiritual practices when anxious. What helps you feel grounded?"

var addictionResponses = []triggered{
	{
		triggers: []string{"kush", "marijuana", "cocaine", "drug"},
		response: "Addiction often starts as a way to cope with pain. NACOB (National Drug Control Board) has free counseling. Recovery is possible, one day at a time. Have you thought about reaching out to them? They're at 079-797979.",
	},
	{
		triggers: []string{"alcohol", "drinking", "drunk"},
		response: "Using alcohol to cope is common, but it can make things worse. Many find support through faith-based recovery groups or NACOB. You don't have to do this alone. What's making you want to drink less?",
	},
}

const addictionFallback = "Addiction often starts as a way to cope with pain. Recovery is possible, and in Sierra Leone, many people find strength through family support, community programs, and sometimes professional treatment. NACOB offers free counseling. You don't have to do this alone."

var spiritualResponses = []triggered{
	{
		triggers: []string{"god", "allah", "prayer", "faith"},
		response: "Your spiritual beliefs are an important part of healing. Many find strength in prayer at the Central Mosque or St. George's Cathedral. How does your faith support you? There's no conflict between seeking help and having faith.",
	},
	{
		triggers: []string{"curse", "witchcraft", "juju", "spiritual"},
		response: "Spiritual concerns are taken seriously in our culture. Traditional healers and religious leaders can offer guidance alongside counseling. Some people find healing by addressing both spiritual and psychological needs. What feels right for you?",
	},
}

const spiritualFallback = "Spiritual concerns are valid and important in our culture. Many find that combining spiritual practices with counseling helps. Have you spoken with a religious leader or traditional healer? Sometimes addressing both spiritual and emotional needs brings healing."

// Single-text intents without sub-triggers.

const depressionResponse = "Depression is heavy, like carrying a weight that others can't see. Many Sierra Leoneans experience this, especially after loss or trauma. In our communities, we often find strength together. Have you talked to family or a trusted community member? Sometimes just being with others who understand helps."

const griefResponse = "Grief is the price we pay for love. In Sierra Leone, we grieve as a community - family, neighbors, all come together. There's no timeline for healing. How long has it been? Have you been able to participate in funeral rites? Sometimes rituals help us process loss."

const relationshipResponse = "Relationships can bring both joy and pain. In Sierra Leone, family and community are central to our identity, which makes relationship problems especially difficult. Have you talked to a trusted family member or community elder? Sometimes outside perspective helps."

const practicalResponse = "Practical problems - money, work, housing - can cause real stress. In Freetown, resources are limited, which makes these challenges harder. Have you checked with the Ministry of Social Welfare or local NGOs for assistance? Sometimes community knows about resources that can help."

const healthResponse = "Health concerns can be worrying, especially when healthcare access is challenging. In Sierra Leone, we have Connaught Hospital, Kissy Hospital, and provincial hospitals. Have you been able to see a healthcare provider? Sometimes talking to family about health concerns helps - they may know local healers or resources."
