// Package matcher computes confidence-scored pairings between observed
// design-tool values and catalog token candidates.
package matcher

// MatchType classifies how a pairing was established.
type MatchType string

const (
	// MatchExact means zero raw distance.
	MatchExact MatchType = "exact"
	// MatchClose means the distance fell inside the close buckets.
	MatchClose MatchType = "close"
	// MatchSemantic means the pairing was distance-floored or a semantic
	// boost/penalty was applied.
	MatchSemantic MatchType = "semantic"
)

// ValueMatch is one confidence-scored pairing between an observed value
// and a catalog token. Instances are produced per property per call and
// never persisted by the engine; the caller decides whether to store or
// apply them.
type ValueMatch struct {
	TokenPath    string    `json:"token_path"`
	VariableName string    `json:"variable_name"`
	VariableID   string    `json:"variable_id,omitempty"`
	CollectionID string    `json:"collection_id,omitempty"`
	Confidence   float64   `json:"confidence"`
	MatchType    MatchType `json:"match_type"`
	Observed     string    `json:"observed"`
	Resolved     string    `json:"resolved"`
}

// Score is the raw outcome of one matcher call before semantic adjustment.
// Confidence is monotonically non-increasing as Distance increases.
type Score struct {
	Confidence float64
	MatchType  MatchType
	Distance   float64
}
