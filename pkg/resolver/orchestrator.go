// Package resolver drives token matching across a node's properties and,
// recursively, its structural children.
package resolver

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/gnana997/tokenbridge/pkg/matcher"
	"github.com/gnana997/tokenbridge/pkg/tokens"
)

// radiusPrefix marks the Scale-collection variables admitted for
// cornerRadius matching despite Scale being a foundation collection.
const radiusPrefix = "radius/"

// PropertyMatch is the per-property outcome: a match, or a reason why
// there is none. A nil match is a first-class reported result, never an
// error.
type PropertyMatch struct {
	Property Property            `json:"property"`
	Match    *matcher.ValueMatch `json:"match"`
	Reason   string              `json:"reason,omitempty"`
}

// NodeReport collects the matches for one node and its children.
type NodeReport struct {
	NodeID   string          `json:"node_id"`
	NodeName string          `json:"node_name,omitempty"`
	Matches  []PropertyMatch `json:"matches,omitempty"`
	Children []NodeReport    `json:"children,omitempty"`
}

// Orchestrator matches node values against a token catalog. It only reads
// shared immutable state and writes local results, so one Orchestrator may
// serve concurrent per-node invocations.
type Orchestrator struct {
	catalog   *tokens.Catalog
	index     *tokens.CatalogIndex
	vars      *tokens.VariableSet
	tolerance float64
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTolerance overrides the numeric matching tolerance.
func WithTolerance(t float64) Option {
	return func(o *Orchestrator) { o.tolerance = t }
}

// WithLogger sets the orchestrator's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// NewOrchestrator creates an orchestrator over a catalog, its index, and
// the full variable set. Returns an error when any of the three is absent,
// the only genuinely unexpected condition in this engine.
func NewOrchestrator(cat *tokens.Catalog, idx *tokens.CatalogIndex, vars *tokens.VariableSet, opts ...Option) (*Orchestrator, error) {
	if cat == nil || idx == nil {
		return nil, fmt.Errorf("token catalog is required")
	}
	if vars == nil {
		return nil, fmt.Errorf("variable set is required")
	}
	o := &Orchestrator{
		catalog:   cat,
		index:     idx,
		vars:      vars,
		tolerance: matcher.DefaultTolerance,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// MatchNode produces one match (or a reasoned miss) per present property,
// then descends into structural children. A node with no visual properties
// of its own but with children is treated as a structural container: each
// child additionally receives a role-derived foreground match. Each
// property and each child is attempted independently; a failure never
// aborts siblings.
func (o *Orchestrator) MatchNode(node NodeValues) NodeReport {
	report := NodeReport{NodeID: node.ID, NodeName: node.Name}

	props := node.propertyValues()
	structural := len(props) == 0 && len(node.Children) > 0

	for _, pv := range props {
		match, reason := o.matchProperty(pv.prop, pv.value, node.Description)
		report.Matches = append(report.Matches, PropertyMatch{
			Property: pv.prop,
			Match:    match,
			Reason:   reason,
		})
	}

	for _, child := range node.Children {
		childReport := o.MatchNode(child)
		if structural {
			role := InferRole(child.Name)
			background := backgroundTokenPath(childReport)
			fg, ok := o.foregroundMatch(role, background)
			pm := PropertyMatch{Property: PropertyForeground, Match: fg}
			if !ok {
				pm.Reason = "no matching token found"
			}
			childReport.Matches = append(childReport.Matches, pm)
		}
		report.Children = append(report.Children, childReport)
	}

	return report
}

// backgroundTokenPath returns the child's matched fill token path, if any.
func backgroundTokenPath(report NodeReport) string {
	for _, pm := range report.Matches {
		if pm.Property == PropertyFill && pm.Match != nil {
			return pm.Match.TokenPath
		}
	}
	return ""
}

// candidate is one scored (tokenPath, variable) pairing during selection.
type candidate struct {
	path     string
	variable tokens.Variable
	score    matcher.Score
	adjusted matcher.Adjustment
	resolved any
}

// matchProperty scores every admissible catalog candidate for one property
// value and returns the winner, or a reason string when nothing is
// admissible. Unparseable candidates and unresolved aliases are skipped,
// never fatal.
func (o *Orchestrator) matchProperty(prop Property, observed any, description string) (*matcher.ValueMatch, string) {
	ctx := matcher.Context{Description: description, Property: prop.Hint()}

	var cands []candidate
	seen := make(map[string]bool)

	for i := range o.catalog.Themes {
		theme := &o.catalog.Themes[i]
		for path, varID := range theme.VariableRefs {
			key := path + "\x00" + varID
			if seen[key] {
				continue
			}
			seen[key] = true

			v, ok := o.vars.Variables[varID]
			if !ok {
				continue
			}
			if !o.admissible(prop, v) {
				continue
			}

			resolved, ok := o.vars.ResolveVariable(varID)
			if !ok {
				// Unresolved alias: treated as no value.
				continue
			}

			var score matcher.Score
			switch prop.Kind() {
			case KindColor:
				score, ok = matcher.MatchColor(observed, resolved)
			default:
				score, ok = matcher.MatchNumeric(observed, resolved, o.tolerance)
			}
			if !ok {
				continue
			}

			cands = append(cands, candidate{
				path:     path,
				variable: v,
				score:    score,
				adjusted: matcher.Adjust(score, path, ctx),
				resolved: resolved,
			})
		}
	}

	if len(cands) == 0 {
		return nil, "no matching token found"
	}

	best := pickBest(cands)
	return &matcher.ValueMatch{
		TokenPath:    best.path,
		VariableName: best.variable.Name,
		VariableID:   best.variable.ID,
		CollectionID: best.variable.CollectionID,
		Confidence:   best.adjusted.Confidence,
		MatchType:    best.adjusted.MatchType,
		Observed:     renderValue(prop, observed),
		Resolved:     renderValue(prop, best.resolved),
	}, ""
}

// admissible applies the foundation/theme filtering rules. Foundation
// collections are excluded as a hard rule; cornerRadius additionally
// admits the Scale subset whose variable names carry the radius prefix.
// The variable's resolved type must also agree with the property kind.
func (o *Orchestrator) admissible(prop Property, v tokens.Variable) bool {
	switch prop.Kind() {
	case KindColor:
		if v.Type != tokens.VariableColor {
			return false
		}
	default:
		if v.Type != tokens.VariableFloat {
			return false
		}
	}

	if !o.vars.IsFoundationCollection(v.CollectionID) {
		return true
	}
	return prop == PropertyCornerRadius &&
		o.vars.IsScaleCollection(v.CollectionID) &&
		strings.HasPrefix(strings.ToLower(v.Name), radiusPrefix)
}

// pickBest ranks candidates two-phase: status-aligned candidates outrank
// all purely metric ones, then raw distance ascending, then property-type
// favor, then confidence, then token path for a stable tie-break. This
// reproduces the legacy subtract-1000 comparison ranking without the magic
// constant.
func pickBest(cands []candidate) candidate {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.adjusted.Aligned != b.adjusted.Aligned {
			return a.adjusted.Aligned
		}
		if a.score.Distance != b.score.Distance {
			return a.score.Distance < b.score.Distance
		}
		if a.adjusted.Favored != b.adjusted.Favored {
			return a.adjusted.Favored
		}
		if a.adjusted.Confidence != b.adjusted.Confidence {
			return a.adjusted.Confidence > b.adjusted.Confidence
		}
		return a.path < b.path
	})
	return cands[0]
}

// renderValue normalizes a value for reporting.
func renderValue(prop Property, value any) string {
	if prop.Kind() == KindColor {
		if rgb, ok := matcher.ParseColor(value); ok {
			return rgb.String()
		}
	} else if f, ok := matcher.ParseNumber(value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", value)
}
