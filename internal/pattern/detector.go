package pattern

// #region imports
import (
	"regexp"
	"strings"
)

// #endregion

// #region rules

// Each rule is a case-insensitive word-boundary alternation. The question
// flag is the one exception: it fires on the presence of a question mark.
var (
	uncertaintyRe = regexp.MustCompile(`(?i)\b(maybe|perhaps|might|possibly|unsure|not sure|uncertain|unclear|i wonder|could be)\b`)
	certaintyRe   = regexp.MustCompile(`(?i)\b(clearly|definitely|certainly|obviously|surely|undoubtedly|of course|without doubt|indeed)\b`)
	revisionRe    = regexp.MustCompile(`(?i)\b(wait|actually|reconsider|rethink|revise|revising|correction|instead|however|on second thought|scratch that|let me try again)\b`)
	enumerationRe = regexp.MustCompile(`(?i)\b(first|firstly|second|secondly|third|thirdly|next|then|lastly|step \d+)\b`)
	emphasisRe    = regexp.MustCompile(`(?i)\b(really|very|crucial|crucially|critical|critically|important|importantly|significant|essential|key point|fundamental)\b`)
	negationRe    = regexp.MustCompile(`(?i)\b(not|no|never|cannot|can't|won't|doesn't|isn't|wasn't|without)\b`)
	causationRe   = regexp.MustCompile(`(?i)\b(because|therefore|thus|hence|since|consequently|as a result|due to|leads to|so that)\b`)
	hedgingRe     = regexp.MustCompile(`(?i)\b(sort of|kind of|somewhat|arguably|roughly|more or less|in a sense|to some extent|relatively|approximately)\b`)
	comparisonRe  = regexp.MustCompile(`(?i)\b(than|compared to|similar to|similarly|whereas|while|unlike|in contrast|on the other hand|versus)\b`)
	resolutionRe  = regexp.MustCompile(`(?i)\b(conclude|concludes|concluded|conclusion|in summary|to sum up|to summarize|ultimately|settled|resolved|the answer is|overall)\b`)
)

// #endregion rules

// #region detect

// Detect maps one text chunk to its linguistic marker flags.
// Pure and deterministic: same text always yields the same flags,
// independent of call order or any session state. An empty or
// whitespace-only chunk yields all-false flags.
func Detect(chunk string) Flags {
	text := strings.TrimSpace(chunk)
	if text == "" {
		return Flags{}
	}
	return Flags{
		Uncertainty: uncertaintyRe.MatchString(text),
		Certainty:   certaintyRe.MatchString(text),
		Revision:    revisionRe.MatchString(text),
		Question:    strings.Contains(text, "?"),
		Enumeration: enumerationRe.MatchString(text),
		Emphasis:    emphasisRe.MatchString(text),
		Negation:    negationRe.MatchString(text),
		Causation:   causationRe.MatchString(text),
		Hedging:     hedgingRe.MatchString(text),
		Comparison:  comparisonRe.MatchString(text),
		Resolution:  resolutionRe.MatchString(text),
	}
}

// #endregion detect

// #region dominant

// dominantOrder fixes which single marker labels a chunk when several match.
// Evaluated top-down, first match wins. An explicit ordered list so the
// precedence is reproducible.
var dominantOrder = []struct {
	pick func(Flags) bool
	cat  Category
}{
	{func(f Flags) bool { return f.Revision }, CategoryRevision},
	{func(f Flags) bool { return f.Resolution }, CategoryResolution},
	{func(f Flags) bool { return f.Certainty }, CategoryCertainty},
	{func(f Flags) bool { return f.Uncertainty }, CategoryUncertainty},
	{func(f Flags) bool { return f.Hedging }, CategoryHedging},
	{func(f Flags) bool { return f.Causation }, CategoryCausation},
	{func(f Flags) bool { return f.Enumeration }, CategoryEnumeration},
	{func(f Flags) bool { return f.Question }, CategoryQuestion},
	{func(f Flags) bool { return f.Emphasis }, CategoryEmphasis},
	{func(f Flags) bool { return f.Comparison }, CategoryComparison},
	{func(f Flags) bool { return f.Negation }, CategoryNegation},
}

// Dominant returns the single category that labels the chunk for observers.
func Dominant(f Flags) Category {
	for _, d := range dominantOrder {
		if d.pick(f) {
			return d.cat
		}
	}
	return CategoryNeutral
}

// #endregion dominant
