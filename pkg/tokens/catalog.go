package tokens

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gnana997/tokenbridge/pkg/util"
)

// TokenRef names one token binding seen from a variable or style.
type TokenRef struct {
	TokenPath  string `json:"token_path"`
	ThemeID    string `json:"theme_id,omitempty"`
	ThemeName  string `json:"theme_name"`
	ThemeGroup string `json:"theme_group,omitempty"`
}

// VariableRef names one variable binding seen from a token path.
type VariableRef struct {
	VariableID string `json:"variable_id"`
	ThemeID    string `json:"theme_id,omitempty"`
	ThemeName  string `json:"theme_name"`
	ThemeGroup string `json:"theme_group,omitempty"`
}

// StyleRef names one style binding seen from a token path.
type StyleRef struct {
	StyleID    string `json:"style_id"`
	ThemeID    string `json:"theme_id,omitempty"`
	ThemeName  string `json:"theme_name"`
	ThemeGroup string `json:"theme_group,omitempty"`
}

// CatalogIndex provides O(1) lookups into the catalog.
// Built during LoadCatalogFromBytes after validation passes.
//
// A variableId may legitimately map to more than one tokenPath when it is
// reused across themes or semantics, so every map holds slices.
type CatalogIndex struct {
	// TokensByVariable maps variableId -> token bindings.
	TokensByVariable map[string][]TokenRef

	// VariablesByToken maps tokenPath -> variable bindings.
	VariablesByToken map[string][]VariableRef

	// TokensByStyle maps styleId -> token bindings.
	TokensByStyle map[string][]TokenRef

	// StylesByToken maps tokenPath -> style bindings.
	StylesByToken map[string][]StyleRef
}

// Validate checks the catalog for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c *Catalog) Validate() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, fmt.Errorf("catalog name is required"))
	}

	themeIDs := make(map[string]bool, len(c.Themes))
	for i, th := range c.Themes {
		if th.Name == "" {
			errs = append(errs, fmt.Errorf("themes[%d]: name is required", i))
		}
		if th.ID != "" {
			if themeIDs[th.ID] {
				errs = append(errs, fmt.Errorf("themes[%d]: duplicate theme id %q", i, th.ID))
				continue
			}
			themeIDs[th.ID] = true
		}
		for path, id := range th.VariableRefs {
			if path == "" {
				errs = append(errs, fmt.Errorf("theme %q: empty token path in variable refs", th.Name))
			}
			if id == "" {
				errs = append(errs, fmt.Errorf("theme %q: token %q references an empty variable id", th.Name, path))
			}
		}
		for path, id := range th.StyleRefs {
			if path == "" {
				errs = append(errs, fmt.Errorf("theme %q: empty token path in style refs", th.Name))
			}
			if id == "" {
				errs = append(errs, fmt.Errorf("theme %q: token %q references an empty style id", th.Name, path))
			}
		}
	}

	return errs
}

// BuildIndex creates the bidirectional lookup maps.
// Should be called after Validate() passes. Themes without reference maps
// are skipped.
func (c *Catalog) BuildIndex() *CatalogIndex {
	idx := &CatalogIndex{
		TokensByVariable: make(map[string][]TokenRef),
		VariablesByToken: make(map[string][]VariableRef),
		TokensByStyle:    make(map[string][]TokenRef),
		StylesByToken:    make(map[string][]StyleRef),
	}

	for i := range c.Themes {
		th := &c.Themes[i]
		for path, varID := range th.VariableRefs {
			idx.TokensByVariable[varID] = append(idx.TokensByVariable[varID], TokenRef{
				TokenPath:  path,
				ThemeID:    th.ID,
				ThemeName:  th.Name,
				ThemeGroup: th.Group,
			})
			idx.VariablesByToken[path] = append(idx.VariablesByToken[path], VariableRef{
				VariableID: varID,
				ThemeID:    th.ID,
				ThemeName:  th.Name,
				ThemeGroup: th.Group,
			})
		}
		for path, styleID := range th.StyleRefs {
			idx.TokensByStyle[styleID] = append(idx.TokensByStyle[styleID], TokenRef{
				TokenPath:  path,
				ThemeID:    th.ID,
				ThemeName:  th.Name,
				ThemeGroup: th.Group,
			})
			idx.StylesByToken[path] = append(idx.StylesByToken[path], StyleRef{
				StyleID:    styleID,
				ThemeID:    th.ID,
				ThemeName:  th.Name,
				ThemeGroup: th.Group,
			})
		}
	}

	return idx
}

// LoadCatalogFromFile loads a catalog from a JSON file, validates it, and
// builds the index. Large exports are read through a memory-mapped view.
func LoadCatalogFromFile(path string) (*Catalog, *CatalogIndex, error) {
	data, release, err := util.ReadFileMapped(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	defer release()
	return LoadCatalogFromBytes(data)
}

// LoadCatalogFromBytes parses a catalog from raw JSON bytes, validates it,
// and builds the index.
func LoadCatalogFromBytes(data []byte) (*Catalog, *CatalogIndex, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}

	index := catalog.BuildIndex()
	return &catalog, index, nil
}
