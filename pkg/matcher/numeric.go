package matcher

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultTolerance is the numeric matching tolerance used when the caller
// does not supply one.
const DefaultTolerance = 2.0

// ParseNumber normalizes an observed or candidate numeric value.
// Accepts floats, ints, json.Number, and numeric strings (a trailing "px"
// suffix is tolerated). Returns false for unparseable or non-finite input.
func ParseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, finite(v)
	case float32:
		return float64(v), finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil && finite(f)
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil && finite(f)
	default:
		return 0, false
	}
}

// MatchNumeric scores an observed number against a candidate with the
// given tolerance (spacing/radius/size/typography all share this shape).
// Distance 0 is exact at 1.0; within tolerance scores 0.95 and within
// twice the tolerance 0.85, both close; beyond that confidence degrades
// linearly over ten tolerances with a 0.5 floor in the semantic bucket.
//
// A tolerance of zero or below falls back to DefaultTolerance.
func MatchNumeric(observed, candidate any, tolerance float64) (Score, bool) {
	obs, ok := ParseNumber(observed)
	if !ok {
		return Score{}, false
	}
	cand, ok := ParseNumber(candidate)
	if !ok {
		return Score{}, false
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	d := math.Abs(obs - cand)
	switch {
	case d == 0:
		return Score{Confidence: 1.0, MatchType: MatchExact, Distance: d}, true
	case d <= tolerance:
		return Score{Confidence: 0.95, MatchType: MatchClose, Distance: d}, true
	case d <= 2*tolerance:
		return Score{Confidence: 0.85, MatchType: MatchClose, Distance: d}, true
	default:
		return Score{
			Confidence: math.Max(0.5, 1-d/(10*tolerance)),
			MatchType:  MatchSemantic,
			Distance:   d,
		}, true
	}
}
