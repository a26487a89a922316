package intent

// intentKeywords maps each intent to its trigger keywords. Matching is
// case-insensitive substring matching against the whole message, so
// multi-word phrases ("kill myself") work without tokenization. The
// table includes Krio phrases alongside English because users switch
// freely between the two.
var intentKeywords = map[string][]string{
	Emergency: {
		"suicide", "kill myself", "end my life", "want to die",
		"harm myself", "self harm", "overdose", "bleeding",
		"no reason to live", "want to disappear", "end it all",
		"feel like dying", "not worth living", "hurt myself",
	},
	Greeting: {
		"hello", "hi", "hey", "good morning", "good afternoon",
		"good evening", "na so", "kushe", "how de", "how you dey",
		"wetin de happen", "how body",
	},
	Crisis: {
		"panic attack", "can't breathe", "crying nonstop", "lost control",
		"can't function", "paralyzed", "can't stop shaking",
		"can't cope", "breaking down", "falling apart",
	},
	Trauma: {
		"war memories", "flashbacks", "nightmares", "ptsd",
		"rape", "assault", "abuse", "violent memories",
		"ebola", "flood", "mudslide", "disaster",
		"war", "rebels", "fighting", "1990s", "conflict",
		"trauma", "traumatic", "triggered", "victim",
		"accident", "crash", "injured", "hospitalized",
	},
	Anxiety: {
		"worried", "anxious", "panic", "stress", "overthinking",
		"nervous", "scared", "fear", "heart racing", "can't sleep",
		"overwhelmed", "stressed", "tense", "restless",
	},
	Depression: {
		"sad", "depressed", "empty", "hopeless", "no energy",
		"can't get up", "tired all the time", "no motivation",
		"worthless", "guilty", "suicidal thoughts",
		"down", "numb", "tears", "crying",
	},
	Addiction: {
		"drugs", "alcohol", "gambling", "addicted", "withdrawal",
		"craving", "relapse", "kush", "marijuana", "cocaine",
		"drinking", "smoking", "using", "substance",
	},
	Grief: {
		"lost", "death", "died", "grieving", "mourning",
		"funeral", "passed away", "bereaved", "miss them",
		"grief", "loss",
	},
	Relationships: {
		"boyfriend", "girlfriend", "husband", "wife", "partner",
		"breakup", "divorce", "cheating", "family conflict",
		"parents", "children", "friends", "lonely", "betrayal",
		"relationship", "spouse",
	},
	Practical: {
		"job", "money", "school", "exams", "work",
		"housing", "food", "unemployment", "poverty",
		"financial", "bills", "debt", "salary", "income",
	},
	Spiritual: {
		"god", "prayer", "sin", "faith", "religious",
		"allah", "church", "mosque", "curse", "witchcraft",
		"juju", "spiritual",
	},
	Health: {
		"sick", "ill", "pain", "health", "doctor",
		"hospital", "symptoms", "medical",
	},
}
