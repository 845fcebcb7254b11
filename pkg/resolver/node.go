package resolver

// NodeValues is a flat record of one node's matchable properties, plus its
// structural children. Colors are accepted as hex strings, "rgba(...)"
// strings, or {r,g,b,a} float component maps (the design tool's raw
// shape); numeric fields are pointers so absence is distinguishable from
// zero.
type NodeValues struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`

	// Description is free text used by the semantic scorer.
	Description string `json:"description,omitempty"`

	Fills   []any `json:"fills,omitempty"`
	Strokes []any `json:"strokes,omitempty"`

	CornerRadius  *float64 `json:"corner_radius,omitempty"`
	PaddingTop    *float64 `json:"padding_top,omitempty"`
	PaddingRight  *float64 `json:"padding_right,omitempty"`
	PaddingBottom *float64 `json:"padding_bottom,omitempty"`
	PaddingLeft   *float64 `json:"padding_left,omitempty"`
	ItemSpacing   *float64 `json:"item_spacing,omitempty"`
	FontSize      *float64 `json:"font_size,omitempty"`
	FontWeight    *float64 `json:"font_weight,omitempty"`

	Children []NodeValues `json:"children,omitempty"`
}

// propertyValue is one present (property, raw value) pair on a node.
type propertyValue struct {
	prop  Property
	value any
}

// propertyValues extracts the node's present matchable properties in a
// fixed order.
func (n *NodeValues) propertyValues() []propertyValue {
	var props []propertyValue

	if len(n.Fills) > 0 {
		props = append(props, propertyValue{PropertyFill, n.Fills[0]})
	}
	if len(n.Strokes) > 0 {
		props = append(props, propertyValue{PropertyStroke, n.Strokes[0]})
	}

	numeric := []struct {
		prop  Property
		value *float64
	}{
		{PropertyCornerRadius, n.CornerRadius},
		{PropertyPaddingTop, n.PaddingTop},
		{PropertyPaddingRight, n.PaddingRight},
		{PropertyPaddingBottom, n.PaddingBottom},
		{PropertyPaddingLeft, n.PaddingLeft},
		{PropertyItemSpacing, n.ItemSpacing},
		{PropertyFontSize, n.FontSize},
		{PropertyFontWeight, n.FontWeight},
	}
	for _, nv := range numeric {
		if nv.value != nil {
			props = append(props, propertyValue{nv.prop, *nv.value})
		}
	}

	return props
}
