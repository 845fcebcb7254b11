package matcher

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color normalized to 0-255 components.
type RGB struct {
	R, G, B float64
}

// String renders the color as an uppercase hex triple.
func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X",
		int(math.Round(c.R)), int(math.Round(c.G)), int(math.Round(c.B)))
}

// ParseColor normalizes an observed or candidate color to 0-255 RGB.
// Accepted shapes:
//   - hex strings: "#RGB", "#RRGGBB", with or without the leading '#'
//   - "rgb(r,g,b)" / "rgba(r,g,b,a)" strings with 0-255 components
//   - {r,g,b[,a]} maps or Color structs with float components in 0..1
//
// Returns false for anything unparseable or non-finite; callers skip such
// candidates so one malformed value never aborts a batch.
func ParseColor(value any) (RGB, bool) {
	switch v := value.(type) {
	case string:
		return parseColorString(v)
	case map[string]any:
		return parseColorComponents(v["r"], v["g"], v["b"])
	case RGB:
		if !finite(v.R) || !finite(v.G) || !finite(v.B) {
			return RGB{}, false
		}
		return v, true
	default:
		return RGB{}, false
	}
}

func parseColorString(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		open := strings.IndexByte(s, '(')
		end := strings.LastIndexByte(s, ')')
		if end <= open {
			return RGB{}, false
		}
		parts := strings.Split(s[open+1:end], ",")
		if len(parts) < 3 {
			return RGB{}, false
		}
		var comps [3]float64
		for i := 0; i < 3; i++ {
			f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
			if err != nil || !finite(f) {
				return RGB{}, false
			}
			comps[i] = clamp255(f)
		}
		return RGB{R: comps[0], G: comps[1], B: comps[2]}, true
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		var comps [3]float64
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseUint(strings.Repeat(string(hex[i]), 2), 16, 8)
			if err != nil {
				return RGB{}, false
			}
			comps[i] = float64(n)
		}
		return RGB{R: comps[0], G: comps[1], B: comps[2]}, true
	case 6, 8:
		var comps [3]float64
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return RGB{}, false
			}
			comps[i] = float64(n)
		}
		return RGB{R: comps[0], G: comps[1], B: comps[2]}, true
	default:
		return RGB{}, false
	}
}

// parseColorComponents handles the design tool's float shape, components
// in 0..1 with an optional alpha that matching ignores.
func parseColorComponents(r, g, b any) (RGB, bool) {
	rf, ok := ParseNumber(r)
	if !ok {
		return RGB{}, false
	}
	gf, ok := ParseNumber(g)
	if !ok {
		return RGB{}, false
	}
	bf, ok := ParseNumber(b)
	if !ok {
		return RGB{}, false
	}
	return RGB{
		R: clamp255(rf * 255),
		G: clamp255(gf * 255),
		B: clamp255(bf * 255),
	}, true
}

// ColorDistance is the Euclidean distance between two colors in RGB space.
func ColorDistance(a, b RGB) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// MatchColor scores an observed color against a candidate. Fixed buckets:
// distance 0 is exact at 1.0; <10 scores 0.95 and <30 scores 0.85, both
// close; everything farther degrades linearly over the 255 range, capped
// at 0.85 and floored at 0.5 in the semantic bucket.
func MatchColor(observed, candidate any) (Score, bool) {
	obs, ok := ParseColor(observed)
	if !ok {
		return Score{}, false
	}
	cand, ok := ParseColor(candidate)
	if !ok {
		return Score{}, false
	}

	d := ColorDistance(obs, cand)
	switch {
	case d == 0:
		return Score{Confidence: 1.0, MatchType: MatchExact, Distance: d}, true
	case d < 10:
		return Score{Confidence: 0.95, MatchType: MatchClose, Distance: d}, true
	case d < 30:
		return Score{Confidence: 0.85, MatchType: MatchClose, Distance: d}, true
	default:
		// Linear falloff capped at the last close bucket so confidence
		// never rises across the 30 boundary.
		return Score{
			Confidence: math.Max(0.5, math.Min(0.85, 1-d/255)),
			MatchType:  MatchSemantic,
			Distance:   d,
		}, true
	}
}

func clamp255(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return f
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
