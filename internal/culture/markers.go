package culture

// proverbs are appended as "Remember, <proverb lowercased>".
var proverbs = []string{
	"After rain comes sunshine.",
	"Small small, day clean.",
	"One day one day, monkey go go market.",
	"Trouble no dey last forever.",
	"Patience go catch monkey.",
	"One hand no fit clap.",
	"Time go tell.",
	"Everything go be alright.",
}

var greetings = []string{
	"My brother/sister,",
	"My dear,",
	"Abi o,",
	"Na true,",
	"Listen,",
	"You see,",
}

var affirmations = []string{
	"You strong pass you think.",
	"God na you dey you side.",
	"We Sierra Leone people get resilience for blood.",
	"Your ancestors dey look you.",
	"You no dey alone for this.",
	"You get people wey dey care about you.",
}

var freetownResources = []string{
	"Kissy Psychiatric Hospital",
	"RAIC (Rainbo Initiative) - 0800-33333",
	"Mental Health Coalition SL",
	"St. John of God Hospital",
	"Ministry of Health and Sanitation",
	"Connaught Hospital",
}

var provinceResources = []string{
	"Makeni Government Hospital",
	"Bo Government Hospital",
	"Kenema Government Hospital",
	"Port Loko Government Hospital",
	"Kambia District Hospital",
}

// emergencyResources is the fixed crisis directory, keyed by channel.
var emergencyResources = map[string]string{
	"national":     "116 - Emergency Services",
	"mentalHealth": "919 - Mental Health Helpline",
	"suicide":      "Text 'HELP' to 8787",
	"hospitals":    "Kissy Psychiatric Hospital (24/7)",
}
