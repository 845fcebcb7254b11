package resolver

import (
	"sort"
	"strings"

	"github.com/gnana997/tokenbridge/pkg/matcher"
)

// Role is an inferred semantic category used to select a foreground token
// independent of the node's own background token.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
	RoleAccent    Role = "accent"
)

// roleConfidence is the reported confidence for role-derived foreground
// selections; they are semantic choices, not metric ones.
const roleConfidence = 0.9

// InferRole infers the semantic role from naming keywords. Anything not
// recognizably secondary or accent is treated as primary.
func InferRole(name string) Role {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "secondary"):
		return RoleSecondary
	case strings.Contains(lower, "accent"):
		return RoleAccent
	default:
		return RolePrimary
	}
}

// foregroundRole maps a role to the role whose foreground token it uses.
// Secondary surfaces invert background/border but retain the primary
// action's content color, so secondary resolves to primary's foreground.
func foregroundRole(role Role) Role {
	if role == RoleSecondary {
		return RolePrimary
	}
	return role
}

// foregroundMatch picks a foreground (text/icon) token for the role,
// distinct from the already-matched background token path. Candidates
// carrying an "inverse" segment are preferred, matching the structural
// convention that action content sits on a colored surface.
func (o *Orchestrator) foregroundMatch(role Role, background string) (*matcher.ValueMatch, bool) {
	target := string(foregroundRole(role))

	var paths []string
	for path := range o.index.VariablesByToken {
		lower := strings.ToLower(path)
		if path == background {
			continue
		}
		if !strings.Contains(lower, target) {
			continue
		}
		if !strings.Contains(lower, "foreground") &&
			!strings.Contains(lower, "text") &&
			!strings.Contains(lower, "icon") {
			continue
		}
		if o.foundationOnlyPath(path) {
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil, false
	}

	sort.Slice(paths, func(i, j int) bool {
		ai := strings.Contains(strings.ToLower(paths[i]), "inverse")
		aj := strings.Contains(strings.ToLower(paths[j]), "inverse")
		if ai != aj {
			return ai
		}
		return paths[i] < paths[j]
	})

	chosen := paths[0]
	refs := o.index.VariablesByToken[chosen]
	match := &matcher.ValueMatch{
		TokenPath:  chosen,
		Confidence: roleConfidence,
		MatchType:  matcher.MatchSemantic,
	}
	if len(refs) > 0 {
		if v, ok := o.vars.Variables[refs[0].VariableID]; ok {
			match.VariableName = v.Name
			match.VariableID = v.ID
			match.CollectionID = v.CollectionID
			if resolved, ok := o.vars.ResolveVariable(v.ID); ok {
				match.Resolved = renderValue(PropertyForeground, resolved)
			}
		} else {
			match.VariableID = refs[0].VariableID
		}
	}
	return match, true
}

// foundationOnlyPath reports whether every variable bound to the path
// lives in a foundation collection.
func (o *Orchestrator) foundationOnlyPath(path string) bool {
	refs := o.index.VariablesByToken[path]
	if len(refs) == 0 {
		return false
	}
	for _, ref := range refs {
		v, ok := o.vars.Variables[ref.VariableID]
		if !ok {
			continue
		}
		if !o.vars.IsFoundationCollection(v.CollectionID) {
			return false
		}
	}
	return true
}
