package matcher

import "strings"

// semanticDominance is the legacy comparison-distance offset. A
// status-aligned candidate's comparison distance is its raw distance minus
// this constant, so any such candidate outranks any purely metric match
// regardless of raw closeness. Ranking itself is done two-phase (aligned
// candidates first, by raw distance); the offset survives only in the
// reported Comparison value, which downstream consumers still read.
const semanticDominance = 1000

// statusKeywords are the intent keywords checked between a free-text
// description and a token path.
var statusKeywords = []string{"success", "warning", "danger", "info"}

// Hint is the property-type hint fed into semantic scoring.
type Hint string

const (
	HintNone       Hint = ""
	HintFill       Hint = "fill"
	HintStroke     Hint = "stroke"
	HintSpacing    Hint = "spacing"
	HintRadius     Hint = "radius"
	HintTypography Hint = "typography"
)

// Context carries the semantic inputs for one match call. Both fields are
// optional; the zero value disables all adjustments.
type Context struct {
	// Description is free text attached to the node or component.
	Description string
	// Property is the kind of property being matched.
	Property Hint
}

// Adjustment is the outcome of semantic scoring for one candidate.
type Adjustment struct {
	// Confidence is the adjusted confidence, clamped to [0,1].
	Confidence float64
	// MatchType becomes MatchSemantic when a boost or penalty was applied.
	MatchType MatchType
	// Aligned marks status-keyword agreement between the description and
	// the token path. Aligned candidates must outrank all purely metric
	// matches regardless of raw closeness.
	Aligned bool
	// Favored marks a token name agreeing with the property type: fill
	// prefers surface tokens, stroke prefers border tokens. Favor is a
	// weak preference used to break distance ties; unlike Aligned it
	// never overrides closeness, and it never changes confidence or
	// match type.
	Favored bool
	// Comparison is the ranking distance under the legacy contract: raw
	// distance, minus the dominance offset for status-aligned candidates.
	Comparison float64
}

// Adjust applies semantic scoring to a raw metric score for one candidate
// token path. It resolves ambiguity when several tokens share
// near-identical raw values but differ in intent, e.g. "danger" and
// "accent" reusing the same red.
func Adjust(score Score, tokenPath string, ctx Context) Adjustment {
	adj := Adjustment{
		Confidence: score.Confidence,
		MatchType:  score.MatchType,
		Comparison: score.Distance,
	}

	path := strings.ToLower(tokenPath)
	desc := strings.ToLower(ctx.Description)

	// Status-keyword agreement between description and token path.
	if desc != "" {
		for _, kw := range statusKeywords {
			if strings.Contains(desc, kw) && strings.Contains(path, kw) {
				adj.Confidence += 0.5
				adj.MatchType = MatchSemantic
				adj.Aligned = true
				adj.Comparison = score.Distance - semanticDominance
				break
			}
		}
	}

	// Property-type agreement. Fill-type properties favor surface tokens
	// and stroke-type properties favor border tokens; a foreground token
	// proposed for either is penalized.
	switch ctx.Property {
	case HintFill:
		if strings.Contains(path, "surface") {
			adj.Favored = true
		}
		if strings.Contains(path, "foreground") {
			adj.Confidence -= 0.3
			adj.MatchType = MatchSemantic
		}
	case HintStroke:
		if strings.Contains(path, "border") {
			adj.Favored = true
		}
		if strings.Contains(path, "foreground") {
			adj.Confidence -= 0.3
			adj.MatchType = MatchSemantic
		}
	}

	if adj.Confidence > 1 {
		adj.Confidence = 1
	}
	if adj.Confidence < 0 {
		adj.Confidence = 0
	}
	return adj
}
