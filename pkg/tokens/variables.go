package tokens

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gnana997/tokenbridge/pkg/util"
)

// foundationCollections are base-scale collection names excluded from most
// matching in favor of semantic theme tokens. Matched case-insensitively.
var foundationCollections = map[string]bool{
	"brand":      true,
	"scale":      true,
	"platform":   true,
	"typography": true,
	"effect":     true,
	"foundation": true,
}

// VariableSet is the full set of design-tool variables plus collection
// metadata. Alias resolution always runs against the full set, never a
// theme-filtered subset, since aliases commonly point at foundation-level
// variables.
type VariableSet struct {
	Variables   map[string]Variable // variableId -> variable
	Collections map[string]string   // collectionId -> name
}

// variableSetJSON is the wire shape of a variable export.
type variableSetJSON struct {
	Variables   []Variable   `json:"variables"`
	Collections []Collection `json:"collections"`
}

// NewVariableSet builds a VariableSet from variable and collection lists.
func NewVariableSet(vars []Variable, collections []Collection) *VariableSet {
	set := &VariableSet{
		Variables:   make(map[string]Variable, len(vars)),
		Collections: make(map[string]string, len(collections)),
	}
	for _, v := range vars {
		set.Variables[v.ID] = v
	}
	for _, c := range collections {
		set.Collections[c.ID] = c.Name
	}
	return set
}

// LoadVariablesFromFile loads a variable export from a JSON file.
func LoadVariablesFromFile(path string) (*VariableSet, error) {
	data, release, err := util.ReadFileMapped(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variables file: %w", err)
	}
	defer release()
	return LoadVariablesFromBytes(data)
}

// LoadVariablesFromBytes parses a variable export from raw JSON bytes.
func LoadVariablesFromBytes(data []byte) (*VariableSet, error) {
	var raw variableSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse variables JSON: %w", err)
	}
	return NewVariableSet(raw.Variables, raw.Collections), nil
}

// CollectionName returns the name of the variable's owning collection.
func (s *VariableSet) CollectionName(collectionID string) string {
	return s.Collections[collectionID]
}

// IsFoundationCollection classifies a collection as foundation (base-scale)
// rather than theme. Unknown collections are treated as theme collections.
func (s *VariableSet) IsFoundationCollection(collectionID string) bool {
	return foundationCollections[strings.ToLower(s.Collections[collectionID])]
}

// IsScaleCollection reports whether the collection is the designated
// numeric "Scale" subset whose radius variables are admitted for
// cornerRadius matching.
func (s *VariableSet) IsScaleCollection(collectionID string) bool {
	return strings.EqualFold(s.Collections[collectionID], "Scale")
}

// FirstModeValue returns the variable's first-mode value, honoring the
// tool's mode order. Falls back to sorted mode ids when the order was not
// exported, so the choice stays deterministic.
func (v Variable) FirstModeValue() (VariableValue, bool) {
	if len(v.Values) == 0 {
		return VariableValue{}, false
	}
	for _, mode := range v.Modes {
		if val, ok := v.Values[mode]; ok {
			return val, true
		}
	}
	modes := make([]string, 0, len(v.Values))
	for mode := range v.Values {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return v.Values[modes[0]], true
}
