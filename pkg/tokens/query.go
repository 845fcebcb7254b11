package tokens

import (
	"sort"
	"strings"
)

// TokenSearchResult holds a token path match with the reason it matched.
type TokenSearchResult struct {
	TokenPath string   `json:"token_path"`
	Themes    []string `json:"themes"`
	Reason    string   `json:"reason"`
}

// Query provides read-only lookups over a loaded catalog and its variable
// set. All methods are pure; independent callers may share one Query.
type Query struct {
	Catalog *Catalog
	Index   *CatalogIndex
	Vars    *VariableSet
}

// NewQuery creates a Query from a validated catalog, its index, and the
// full variable set. vars may be nil when only path-level lookups are
// needed.
func NewQuery(cat *Catalog, idx *CatalogIndex, vars *VariableSet) *Query {
	return &Query{Catalog: cat, Index: idx, Vars: vars}
}

// Themes returns all themes in the catalog.
func (q *Query) Themes() []Theme {
	return q.Catalog.Themes
}

// TokenPaths returns the distinct variable-bound token paths, sorted.
func (q *Query) TokenPaths() []string {
	paths := make([]string, 0, len(q.Index.VariablesByToken))
	for path := range q.Index.VariablesByToken {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// StyleTokenPaths returns the distinct style-bound token paths, sorted.
func (q *Query) StyleTokenPaths() []string {
	paths := make([]string, 0, len(q.Index.StylesByToken))
	for path := range q.Index.StylesByToken {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// VariablesForToken returns the variable bindings for a token path.
func (q *Query) VariablesForToken(path string) []VariableRef {
	return q.Index.VariablesByToken[path]
}

// TokensForVariable returns the token bindings for a variable id.
func (q *Query) TokensForVariable(variableID string) []TokenRef {
	return q.Index.TokensByVariable[variableID]
}

// StylesForToken returns the style bindings for a token path.
func (q *Query) StylesForToken(path string) []StyleRef {
	return q.Index.StylesByToken[path]
}

// ResolveToken resolves a token path to its effective first-theme literal
// value, following variable aliases. Returns false when the path has no
// variable binding or the binding does not resolve.
func (q *Query) ResolveToken(path string) (any, bool) {
	if q.Vars == nil {
		return nil, false
	}
	for _, ref := range q.Index.VariablesByToken[path] {
		if value, ok := q.Vars.ResolveVariable(ref.VariableID); ok {
			return value, true
		}
	}
	return nil, false
}

// SearchTokens performs a case-insensitive substring search across token
// paths, both variable- and style-bound.
func (q *Query) SearchTokens(query string) []TokenSearchResult {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	var results []TokenSearchResult
	for _, path := range q.TokenPaths() {
		if !strings.Contains(strings.ToLower(path), query) {
			continue
		}
		results = append(results, TokenSearchResult{
			TokenPath: path,
			Themes:    q.themeNamesFor(path),
			Reason:    "variable",
		})
	}
	for _, path := range q.StyleTokenPaths() {
		if !strings.Contains(strings.ToLower(path), query) {
			continue
		}
		if _, alsoVariable := q.Index.VariablesByToken[path]; alsoVariable {
			continue
		}
		results = append(results, TokenSearchResult{
			TokenPath: path,
			Themes:    q.themeNamesFor(path),
			Reason:    "style",
		})
	}
	return results
}

func (q *Query) themeNamesFor(path string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ref := range q.Index.VariablesByToken[path] {
		if !seen[ref.ThemeName] {
			seen[ref.ThemeName] = true
			names = append(names, ref.ThemeName)
		}
	}
	for _, ref := range q.Index.StylesByToken[path] {
		if !seen[ref.ThemeName] {
			seen[ref.ThemeName] = true
			names = append(names, ref.ThemeName)
		}
	}
	sort.Strings(names)
	return names
}
