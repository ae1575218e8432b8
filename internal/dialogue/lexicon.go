package dialogue

var greetings = toSet("hi", "hello", "hey", "greetings", "yo", "morning", "evening")

// Accusation words are matched on stems; the phrase is matched on raw text.
var (
	accusationWords  = []string{"kill", "murder", "guilty", "arrest", "confess", "stab", "poison", "hurt", "harm", "shoot"}
	accusationPhrase = "did you do it"
)

var secondPerson = toSet("you", "your", "yourself", "ya", "u")

var (
	insultWords   = toSet("idiot", "liar", "stupid", "moron", "fool", "dumb", "scum", "pathetic", "loser", "coward", "imbecile", "creep")
	insultPhrases = []string{"shut up", "shut it", "go to hell", "screw you", "damn you"}
)

// Stop words that still carry meaning in a question.
var keep = toSet("i", "you", "he", "she", "who", "what", "where", "doing", "anyone", "else", "think", "kill", "killed")

var synonyms = map[string][]string{
	"do":     {"doing", "action", "activity", "working", "busy"},
	"doing":  {"working", "busy", "waiting", "setting", "preparing"},
	"where":  {"location", "place", "room", "spot", "area", "scene"},
	"motive": {"money", "revenge", "love", "debt", "business", "reason", "benefit", "will", "inheritance"},
	"reason": {"motive", "why", "explanation", "cause"},
	"money":  {"cash", "debt", "paid", "wealth", "fortune", "gambling", "inheritance", "accounts", "funds", "payment"},
	"angry":  {"shouting", "yelling", "argued", "furious", "disagreement", "fight", "conflict", "mad", "upset"},
	"fight":  {"argument", "disagreement", "struggle", "yelling", "clash"},
	"see":    {"saw", "witnessed", "noticed", "look", "anyone", "observe", "spot"},
	"saw":    {"witnessed", "noticed", "look", "anyone", "observed"},
	"weapon": {"gun", "knife", "poison", "object", "item", "tool", "murder weapon", "blade"},
	"kill":   {"harm", "hurt", "murder", "dead", "died", "violent", "killed", "attack"},
	"body":   {"victim", "dead", "corpse", "scene", "murder"},
	"when":   {"time", "hour", "moment", "long", "ago"},
	"happen": {"occurred", "took place", "event", "incident"},
}

var annoyedPhrases = []string{
	"I already answered that!",
	"Are you not listening? I am not repeating myself.",
	"I told you already!",
	"Do not waste my time with the same questions.",
}

var offendedPhrases = []string{
	"I will not be spoken to like that.",
	"Mind your tongue, Detective.",
	"Insults will get you nowhere.",
	"How dare you speak to me that way!",
}

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
