package tokens

// ResolveValue resolves a per-mode value through any chain of variable
// aliases to its effective literal. If the value is a literal it is
// returned as-is. If it is an alias, the referenced variable's first mode
// value is resolved recursively against the full set.
//
// visited carries the variable ids already seen on this resolution path;
// pass nil at the top level. Revisiting an id terminates resolution as
// unresolved rather than looping, which guards the cyclic alias graphs a
// design tool can produce. A missing referenced variable is also
// unresolved. Unresolved values return (nil, false).
func (s *VariableSet) ResolveValue(value VariableValue, visited map[string]bool) (any, bool) {
	if !value.IsAlias() {
		return value.Value, true
	}

	if visited == nil {
		visited = make(map[string]bool)
	}
	if visited[value.AliasOf] {
		return nil, false
	}
	visited[value.AliasOf] = true

	target, ok := s.Variables[value.AliasOf]
	if !ok {
		return nil, false
	}
	next, ok := target.FirstModeValue()
	if !ok {
		return nil, false
	}
	return s.ResolveValue(next, visited)
}

// ResolveVariable resolves a variable's effective first-mode literal.
func (s *VariableSet) ResolveVariable(variableID string) (any, bool) {
	v, ok := s.Variables[variableID]
	if !ok {
		return nil, false
	}
	value, ok := v.FirstModeValue()
	if !ok {
		return nil, false
	}
	return s.ResolveValue(value, map[string]bool{variableID: true})
}
