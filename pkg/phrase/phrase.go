// Package phrase maps free text like "apply surface accent color" to a
// token path, optional style reference, and a guessed property name.
// Resolution never guesses below the score threshold: an ambiguous phrase
// yields no binding rather than a wrong one.
package phrase

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/tokenbridge/pkg/tokens"
)

// scoreThreshold is the minimum best score accepted for any match.
const scoreThreshold = 2

// cacheSize bounds the phrase resolution cache. Resolution is pure and
// idempotent for a fixed catalog, so caching is sound.
const cacheSize = 256

// Kind says whether a phrase targeted a style or a variable token.
type Kind string

const (
	KindVariable Kind = "variable"
	KindStyle    Kind = "style"
)

// Resolution is the outcome of resolving one phrase.
type Resolution struct {
	Kind Kind `json:"kind"`

	TokenPath string `json:"token_path"`

	// VariableName is the design-tool variable name for variable
	// resolutions (token path with separators substituted).
	VariableName string `json:"variable_name,omitempty"`

	// StyleID is set for style resolutions when the catalog binds one.
	StyleID string `json:"style_id,omitempty"`

	// Property is the guessed target property name, e.g. "paddingTop" or
	// "effectStyleId". Empty when no keyword rule fired.
	Property string `json:"property,omitempty"`

	Score int `json:"score"`
}

// styleKeywords flag a phrase as targeting a style rather than a variable.
var styleKeywords = []string{"text style", "typography", "shadow", "blur", "effect"}

// styleNouns flag style intent when they co-occur with the word "style".
var styleNouns = []string{"button", "heading"}

// Resolver resolves phrases against one catalog session.
type Resolver struct {
	query *tokens.Query
	cache *lru.Cache[string, *Resolution]
}

// NewResolver creates a phrase resolver over the given query service.
func NewResolver(q *tokens.Query) (*Resolver, error) {
	cache, err := lru.New[string, *Resolution](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create phrase cache: %w", err)
	}
	return &Resolver{query: q, cache: cache}, nil
}

// Resolve maps a phrase to a token binding. Returns false when no token
// path clears the score threshold.
func (r *Resolver) Resolve(text string) (*Resolution, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil, false
	}

	if cached, ok := r.cache.Get(normalized); ok {
		return cached, cached != nil
	}

	var res *Resolution
	if isStylePhrase(normalized) {
		res = r.resolveStyle(normalized)
	} else {
		res = r.resolveVariable(normalized)
	}
	r.cache.Add(normalized, res)

	return res, res != nil
}

// isStylePhrase detects whether the phrase targets a text/effect style.
func isStylePhrase(phrase string) bool {
	for _, kw := range styleKeywords {
		if strings.Contains(phrase, kw) {
			return true
		}
	}
	if strings.Contains(phrase, "style") {
		for _, noun := range styleNouns {
			if strings.Contains(phrase, noun) {
				return true
			}
		}
	}
	return false
}

func (r *Resolver) resolveStyle(phrase string) *Resolution {
	path, score := bestScoredPath(phrase, r.query.StyleTokenPaths(), true)
	if score < scoreThreshold {
		return nil
	}

	res := &Resolution{
		Kind:      KindStyle,
		TokenPath: path,
		Property:  inferProperty(phrase),
		Score:     score,
	}
	if refs := r.query.StylesForToken(path); len(refs) > 0 {
		res.StyleID = refs[0].StyleID
	}
	return res
}

func (r *Resolver) resolveVariable(phrase string) *Resolution {
	path, score := bestScoredPath(phrase, r.query.TokenPaths(), false)
	if score < scoreThreshold {
		return nil
	}

	return &Resolution{
		Kind:         KindVariable,
		TokenPath:    path,
		VariableName: VariableName(path),
		Property:     inferProperty(phrase),
		Score:        score,
	}
}

// bestScoredPath runs the overlap scorer over every candidate path and
// returns the winner. Candidates arrive sorted, so equal scores resolve to
// the lexically first path and resolution is idempotent for a fixed
// catalog and phrase.
func bestScoredPath(phrase string, paths []string, style bool) (string, int) {
	words := phraseWords(phrase)

	bestPath := ""
	bestScore := 0
	for _, path := range paths {
		score := scorePath(words, phrase, path, style)
		if score > bestScore {
			bestScore = score
			bestPath = path
		}
	}
	return bestPath, bestScore
}

// scorePath counts phrase-word/path-segment overlaps: 2 points per segment
// match, +1 when the phrase mentions "surface" and the path starts with
// "color.surface", +2 for style/effect keyword co-occurrence on style
// paths.
func scorePath(words map[string]bool, phrase, path string, style bool) int {
	score := 0
	for _, seg := range pathSegments(path) {
		if words[seg] {
			score += 2
		}
	}
	if words["surface"] && strings.HasPrefix(strings.ToLower(path), "color.surface") {
		score++
	}
	if style {
		lower := strings.ToLower(path)
		if (words["style"] || words["effect"]) &&
			(strings.Contains(lower, "style") || strings.Contains(lower, "effect") ||
				strings.Contains(lower, "text") || strings.Contains(lower, "shadow")) {
			score += 2
		}
	}
	return score
}

// VariableName converts a token path to the design-tool variable name by
// path-separator substitution ("color.surface.accent" -> "color/surface/accent").
func VariableName(tokenPath string) string {
	return strings.ReplaceAll(tokenPath, ".", "/")
}

// propertyRules are checked in order; the first phrase hit wins.
var propertyRules = []struct {
	keywords []string
	property string
}{
	{[]string{"padding top"}, "paddingTop"},
	{[]string{"padding right"}, "paddingRight"},
	{[]string{"padding bottom"}, "paddingBottom"},
	{[]string{"padding left"}, "paddingLeft"},
	{[]string{"item spacing", "spacing", "gap"}, "itemSpacing"},
	{[]string{"corner radius", "radius", "corner"}, "cornerRadius"},
	{[]string{"font size", "text size"}, "fontSize"},
	{[]string{"font weight", "bold"}, "fontWeight"},
	{[]string{"text style", "typography"}, "textStyleId"},
	{[]string{"shadow", "blur", "effect"}, "effectStyleId"},
	{[]string{"stroke", "border"}, "strokes"},
	{[]string{"fill", "background", "surface", "color"}, "fills"},
}

// inferProperty guesses a target property name from keyword rules,
// independently of which token path won.
func inferProperty(phrase string) string {
	for _, rule := range propertyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(phrase, kw) {
				return rule.property
			}
		}
	}
	return ""
}

// phraseWords splits a phrase into its lowercase word set.
func phraseWords(phrase string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(phrase, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		words[w] = true
	}
	return words
}

// pathSegments splits a token path on its separators.
func pathSegments(path string) []string {
	return strings.FieldsFunc(strings.ToLower(path), func(r rune) bool {
		return r == '.' || r == '/' || r == '-'
	})
}
