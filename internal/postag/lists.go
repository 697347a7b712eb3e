// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postag

// closedList is one closed word class. Lists are consulted in the order of
// closedLists; the first list containing a word decides its tag.
type closedList struct {
	name       string
	tag        string
	score      float64
	morphology map[string]string
	words      map[string]bool
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var closedLists = []closedList{
	{
		name: "determiner", tag: TagDET, score: 0.95,
		words: set(
			"der", "die", "das", "den", "dem", "des",
			"ein", "eine", "einen", "einem", "einer", "eines",
			"kein", "keine", "keinen", "keinem", "keiner", "keines",
			"dieser", "diese", "dieses", "diesen", "diesem",
			"jener", "jene", "jenes", "jenen", "jenem",
			"jeder", "jede", "jedes", "jeden", "jedem",
			"alle", "allen", "aller", "alles",
			"mancher", "manche", "manches", "manchen", "manchem",
			"welcher", "welche", "welches", "welchen", "welchem",
		),
	},
	{
		name: "pronoun", tag: TagPRON, score: 0.9,
		words: set(
			"ich", "du", "er", "sie", "es", "wir", "ihr",
			"mich", "dich", "sich", "uns", "euch",
			"mir", "dir", "ihm", "ihn", "ihnen",
			"man", "jemand", "niemand", "nichts", "etwas", "wer", "was",
		),
	},
	{
		name: "possessive", tag: TagDET, score: 0.9,
		morphology: map[string]string{"Poss": "Yes"},
		words: set(
			"mein", "meine", "meinen", "meinem", "meines", "meiner",
			"dein", "deine", "deinen", "deinem", "deines", "deiner",
			"sein", "seine", "seinen", "seinem", "seines", "seiner",
			"ihre", "ihren", "ihrem", "ihres", "ihrer",
			"unser", "unsere", "unseren", "unserem", "unseres", "unserer",
			"euer", "eure", "euren", "eurem", "eures", "eurer",
		),
	},
	{
		name: "preposition", tag: TagADP, score: 0.95,
		words: set(
			"in", "an", "auf", "aus", "bei", "mit", "nach", "von", "zu",
			"vor", "über", "unter", "neben", "zwischen", "durch", "für",
			"gegen", "ohne", "um", "bis", "seit", "während", "wegen",
			"trotz", "hinter", "entlang", "gegenüber", "statt",
			"am", "im", "zum", "zur", "vom", "beim", "ins", "ans", "aufs",
		),
	},
	{
		name: "coordinating conjunction", tag: TagCCONJ, score: 0.9,
		words: set("und", "oder", "aber", "denn", "sondern", "sowie", "doch", "jedoch"),
	},
	{
		name: "subordinating conjunction", tag: TagSCONJ, score: 0.9,
		words: set(
			"dass", "daß", "weil", "wenn", "als", "ob", "obwohl", "damit",
			"nachdem", "bevor", "falls", "sobald", "indem", "sodass",
			"solange", "wie", "wo", "obgleich",
		),
	},
	{
		name: "auxiliary", tag: TagAUX, score: 0.9,
		words: set(
			"bin", "bist", "ist", "sind", "seid", "war", "warst", "waren", "wart",
			"gewesen", "wäre", "wären",
			"haben", "habe", "hast", "hat", "habt", "hatte", "hatten", "hattest", "gehabt", "hätte", "hätten",
			"werden", "werde", "wirst", "wird", "werdet", "wurde", "wurden", "geworden", "würde", "würden",
		),
	},
	{
		name: "modal", tag: TagAUX, score: 0.85,
		morphology: map[string]string{"VerbType": "Mod"},
		words: set(
			"können", "kann", "kannst", "könnt", "konnte", "konnten", "könnte", "könnten",
			"müssen", "muss", "muß", "musst", "müsst", "musste", "mussten", "müsste",
			"dürfen", "darf", "darfst", "dürft", "durfte", "durften", "dürfte",
			"sollen", "soll", "sollst", "sollt", "sollte", "sollten",
			"wollen", "will", "willst", "wollt", "wollte", "wollten",
			"mögen", "mag", "magst", "mögt", "mochte", "möchte", "möchten",
		),
	},
	{
		name: "particle", tag: TagPART, score: 0.85,
		words: set(
			"nicht", "ja", "nein", "nur", "auch", "noch", "schon", "sehr",
			"gar", "eben", "halt", "mal", "wohl", "etwa", "zwar",
		),
	},
	{
		name: "adverb", tag: TagADV, score: 0.8,
		words: set(
			"hier", "dort", "da", "heute", "morgen", "gestern", "jetzt",
			"immer", "nie", "niemals", "oft", "bald", "dann", "so", "gern",
			"gerne", "also", "wieder", "fast", "ganz", "oben", "unten",
			"vielleicht", "leider", "bereits", "kaum", "sogar", "damals",
			"überall", "nun", "einmal", "manchmal", "endlich", "sofort",
		),
	},
}
