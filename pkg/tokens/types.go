package tokens

// Theme is one named value variant (e.g. Light/Dark) carrying its own
// tokenPath → variable/style id maps. Either reference map may be absent;
// that is legitimate metadata, not an error.
type Theme struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Group        string            `json:"group,omitempty"`
	VariableRefs map[string]string `json:"variable_refs,omitempty"` // tokenPath -> variableId
	StyleRefs    map[string]string `json:"style_refs,omitempty"`    // tokenPath -> styleId
}

// Catalog holds the theme/token data for one resolution session.
// It is built once from externally supplied data and not mutated afterward.
type Catalog struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Themes  []Theme `json:"themes"`
}

// VariableType is the resolved type of a design variable.
type VariableType string

const (
	VariableColor  VariableType = "COLOR"
	VariableFloat  VariableType = "FLOAT"
	VariableString VariableType = "STRING"
)

// VariableValue is a single per-mode value: either a literal or a
// reference to another variable.
type VariableValue struct {
	Value   any    `json:"value,omitempty"`
	AliasOf string `json:"alias_of,omitempty"` // referenced variable id; empty for literals
}

// IsAlias reports whether the value is an indirection rather than a literal.
func (v VariableValue) IsAlias() bool {
	return v.AliasOf != ""
}

// Literal wraps a literal value.
func Literal(value any) VariableValue {
	return VariableValue{Value: value}
}

// Alias wraps a reference to another variable id.
func Alias(variableID string) VariableValue {
	return VariableValue{AliasOf: variableID}
}

// Variable is one design-tool variable with its per-mode values.
// Modes preserves the tool's mode order so that "first mode" is
// deterministic; Values keys are mode ids.
type Variable struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	CollectionID string                   `json:"collection_id"`
	Type         VariableType             `json:"type"`
	Modes        []string                 `json:"modes,omitempty"`
	Values       map[string]VariableValue `json:"values"`
}

// Collection is the id/name metadata for a variable collection.
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
