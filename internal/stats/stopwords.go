package stats

// defaultStopwords filters common function words in both chat languages
// before word-frequency counting. Tokens of one or two characters are
// dropped regardless, so only longer entries matter here.
var defaultStopwords = []string{
	// English
	"the", "and", "you", "that", "for", "this", "with", "was", "are",
	"not", "but", "have", "our",
	// Russian
	"это", "что", "как", "там", "мне", "меня", "тебя", "тебе", "его",
	"она",
	"они", "оно", "еще", "ещё", "уже", "вот", "так", "все", "всё",
	"был", "была", "быть", "нет", "чтобы", "если", "когда", "или",
	"тоже", "просто", "только",
}
