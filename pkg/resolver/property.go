package resolver

import "github.com/gnana997/tokenbridge/pkg/matcher"

// Property is the closed set of matchable node properties. Each property
// carries its value kind and semantic hint, so an invalid property/value
// combination cannot be expressed.
type Property string

const (
	PropertyFill          Property = "fill"
	PropertyStroke        Property = "stroke"
	PropertyCornerRadius  Property = "cornerRadius"
	PropertyPaddingTop    Property = "paddingTop"
	PropertyPaddingRight  Property = "paddingRight"
	PropertyPaddingBottom Property = "paddingBottom"
	PropertyPaddingLeft   Property = "paddingLeft"
	PropertyItemSpacing   Property = "itemSpacing"
	PropertyFontSize      Property = "fontSize"
	PropertyFontWeight    Property = "fontWeight"

	// PropertyForeground is derived from a child's semantic role rather
	// than read off the node; see the structural descent in MatchNode.
	PropertyForeground Property = "foreground"
)

// ValueKind is the shape of value a property carries.
type ValueKind int

const (
	KindColor ValueKind = iota
	KindNumeric
)

// Kind returns the property's value kind.
func (p Property) Kind() ValueKind {
	switch p {
	case PropertyFill, PropertyStroke, PropertyForeground:
		return KindColor
	default:
		return KindNumeric
	}
}

// Hint returns the property-type hint fed into semantic scoring.
func (p Property) Hint() matcher.Hint {
	switch p {
	case PropertyFill, PropertyForeground:
		return matcher.HintFill
	case PropertyStroke:
		return matcher.HintStroke
	case PropertyCornerRadius:
		return matcher.HintRadius
	case PropertyFontSize, PropertyFontWeight:
		return matcher.HintTypography
	default:
		return matcher.HintSpacing
	}
}
