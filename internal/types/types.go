package types

// Kind is the metric kind carried by a report counter's type attribute.
type Kind string

const (
	KindInstruction Kind = "INSTRUCTION"
	KindBranch      Kind = "BRANCH"
	KindLine        Kind = "LINE"
	KindComplexity  Kind = "COMPLEXITY"
	KindMethod      Kind = "METHOD"
	KindClass       Kind = "CLASS"
)

// Counter holds the missed and covered units of one metric kind.
type Counter struct {
	Kind    Kind
	Missed  uint64
	Covered uint64
}

// Match is the raw outcome of scanning a report for one counter kind.
// Attribute values are kept as text so that only the selected counter gets validated.
type Match struct {
	Count      int    // matching counters seen, in document order
	Missed     string // attributes of the last match
	Covered    string
	HasMissed  bool
	HasCovered bool
	Offset     int64 // input byte offset just past the last match's start tag
}
