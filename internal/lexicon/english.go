package lexicon

// DefaultEnglish returns the built-in English table. It is not a corpus
// snapshot: it covers the function words plus the concrete nouns and
// adverbs that actually leak into headword position in scanned dictionary
// columns, with scores tuned so the default arbiter thresholds (moderate
// 4.5, strong 5.0) classify them as gloss language.
func DefaultEnglish() *Lexicon {
	return New(englishZipf)
}

var englishZipf = map[string]float64{
	// Function words.
	"the": 7.7, "of": 7.1, "and": 7.0, "a": 7.1, "to": 7.2, "in": 6.9,
	"is": 6.7, "it": 6.6, "you": 6.8, "that": 6.6, "he": 6.3, "she": 6.1,
	"was": 6.4, "for": 6.6, "on": 6.4, "are": 6.2, "as": 6.3, "with": 6.3,
	"his": 6.0, "her": 6.1, "they": 6.2, "at": 6.2, "be": 6.4, "this": 6.4,
	"have": 6.3, "from": 6.2, "or": 6.3, "one": 6.1, "had": 5.9, "by": 6.2,
	"not": 6.5, "but": 6.3, "what": 6.2, "all": 6.2, "were": 5.9, "we": 6.3,
	"when": 6.1, "your": 6.2, "can": 6.2, "there": 6.1, "an": 6.1, "which": 5.9,
	"their": 5.9, "if": 6.1, "do": 6.2, "will": 6.1, "each": 5.5, "about": 6.0,
	"how": 6.0, "up": 6.1, "out": 6.1, "them": 5.9, "then": 5.8, "so": 6.2,
	"some": 5.9, "would": 5.9, "into": 5.8, "has": 5.9, "more": 6.0,
	"no": 6.1, "who": 6.0, "him": 5.8, "been": 5.8, "now": 5.9, "its": 5.7,
	"than": 5.8, "who's": 4.6, "whose": 5.0, "where": 5.7, "after": 5.7,
	"before": 5.6, "because": 5.7, "very": 5.8, "also": 5.8, "any": 5.8,
	"other": 5.9, "only": 6.0, "most": 5.9, "over": 5.8, "such": 5.6,
	"here": 5.8, "between": 5.5, "both": 5.5, "under": 5.3, "again": 5.5,
	"without": 5.4, "against": 5.3, "during": 5.2, "through": 5.5,

	// Common verbs and adjectives.
	"go": 5.9, "come": 5.7, "make": 5.8, "take": 5.7, "give": 5.6,
	"get": 6.0, "put": 5.5, "say": 5.8, "said": 5.8, "see": 5.9, "know": 5.9,
	"eat": 5.1, "drink": 4.9, "sleep": 4.9, "walk": 5.0, "run": 5.2,
	"speak": 5.0, "call": 5.6, "called": 5.5, "become": 5.3, "becomes": 4.7,
	"big": 5.3, "small": 5.3, "good": 6.0, "bad": 5.5, "old": 5.6,
	"new": 5.9, "long": 5.6, "short": 5.2, "high": 5.5, "low": 5.2,
	"white": 5.3, "black": 5.3, "red": 5.2, "used": 5.5, "wrong": 5.2,

	// Concrete nouns seen leaking into headword position.
	"man": 5.4, "men": 5.1, "woman": 4.9, "women": 4.9, "boy": 4.9,
	"girl": 5.0, "child": 5.1, "children": 5.2, "people": 5.6, "person": 5.3,
	"mother": 5.2, "father": 5.2, "brother": 4.9, "sister": 4.9,
	"family": 5.4, "house": 5.3, "home": 5.6, "water": 5.3, "milk": 4.7,
	"food": 5.2, "bread": 4.6, "meat": 4.7, "fire": 5.0, "earth": 4.9,
	"ground": 5.0, "mountain": 4.5, "river": 4.8, "tree": 4.8, "grass": 4.4,
	"animal": 4.7, "cow": 4.3, "goat": 4.0, "sheep": 4.4, "camel": 3.9,
	"horse": 4.8, "dog": 5.0, "bird": 4.7, "fish": 4.9, "hand": 5.3,
	"head": 5.4, "eye": 4.9, "eyes": 5.2, "foot": 4.8, "blood": 4.9,
	"day": 5.9, "days": 5.5, "night": 5.2, "year": 5.7, "years": 5.8,
	"time": 5.9, "name": 5.4, "word": 5.1, "thing": 5.4, "things": 5.6,
	"something": 5.5, "nothing": 5.4, "place": 5.5, "way": 5.8, "work": 5.7,
	"world": 5.5, "life": 5.7, "death": 5.0, "god": 5.1, "money": 5.4,
	"females": 4.5, "female": 4.9, "males": 4.5, "male": 4.9,

	// Gloss-register vocabulary from dictionary definitions. Scores are
	// floored at the moderate threshold so single-word definition lines
	// never pass as headwords.
	"maturity": 4.6, "health": 5.0, "custom": 4.6, "culture": 4.8,
	"usually": 5.0, "anyway": 4.8, "especially": 5.1, "generally": 4.9,
	"probably": 5.3, "perhaps": 5.1, "together": 5.4, "towards": 4.9,
	"kind": 5.4, "type": 5.2, "sort": 5.0, "form": 5.3, "plural": 4.5,
	"singular": 4.5, "meaning": 5.0, "example": 5.2, "sometimes": 5.2,
}
