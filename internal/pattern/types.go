package pattern

// #region flags

// Flags records which linguistic markers a single text chunk matched.
// The flags are independent: zero, one, or many may be true for one chunk.
type Flags struct {
	Uncertainty bool
	Certainty   bool
	Revision    bool
	Question    bool
	Enumeration bool
	Emphasis    bool
	Negation    bool
	Causation   bool
	Hedging     bool
	Comparison  bool
	Resolution  bool
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.Uncertainty || f.Certainty || f.Revision || f.Question ||
		f.Enumeration || f.Emphasis || f.Negation || f.Causation ||
		f.Hedging || f.Comparison || f.Resolution
}

// #endregion flags

// #region category

// Category labels a chunk with its single dominant linguistic marker,
// for observers (the visual legend). Audio triggering never uses it.
type Category string

const (
	CategoryRevision    Category = "revision"
	CategoryResolution  Category = "resolution"
	CategoryCertainty   Category = "certainty"
	CategoryUncertainty Category = "uncertainty"
	CategoryHedging     Category = "hedging"
	CategoryCausation   Category = "causation"
	CategoryEnumeration Category = "enumeration"
	CategoryQuestion    Category = "question"
	CategoryEmphasis    Category = "emphasis"
	CategoryComparison  Category = "comparison"
	CategoryNegation    Category = "negation"
	CategoryNeutral     Category = "neutral"
)

// #endregion category
