package executor

import (
	"github.com/fernql/fernql/internal/language"
	"github.com/fernql/fernql/internal/schema"
)

// fieldGroup is the set of AST fields that merge into one response key.
type fieldGroup struct {
	ResponseName string
	Fields       []*language.Field
}

// groupedFields preserves the order response keys first appear in the query.
type groupedFields struct {
	groups []fieldGroup
	index  map[string]int
}

func newGroupedFields() *groupedFields {
	return &groupedFields{index: make(map[string]int)}
}

func (g *groupedFields) add(responseName string, field *language.Field) {
	if i, ok := g.index[responseName]; ok {
		g.groups[i].Fields = append(g.groups[i].Fields, field)
		return
	}
	g.index[responseName] = len(g.groups)
	g.groups = append(g.groups, fieldGroup{ResponseName: responseName, Fields: []*language.Field{field}})
}

func (g *groupedFields) ordered() []fieldGroup { return g.groups }

// collectFields flattens a selection set into ordered response groups,
// expanding fragments and honoring @skip/@include.
func collectFields(state *executionState, objectType *schema.Type, selections language.SelectionSet) *groupedFields {
	grouped := newGroupedFields()
	collect(state, objectType, selections, grouped, make(map[string]bool))
	return grouped
}

func collect(state *executionState, objectType *schema.Type, selections language.SelectionSet, grouped *groupedFields, visited map[string]bool) {
	for _, selection := range selections {
		switch sel := selection.(type) {
		case *language.Field:
			if !includeNode(state, sel.Directives) {
				continue
			}
			name := sel.Alias
			if name == "" {
				name = sel.Name
			}
			grouped.add(name, sel)

		case *language.InlineFragment:
			if !includeNode(state, sel.Directives) {
				continue
			}
			if sel.TypeCondition != "" && sel.TypeCondition != objectType.Name {
				continue
			}
			collect(state, objectType, sel.SelectionSet, grouped, visited)

		case *language.FragmentSpread:
			if !includeNode(state, sel.Directives) {
				continue
			}
			if visited[sel.Name] {
				continue
			}
			visited[sel.Name] = true
			frag := state.document.Fragments.ForName(sel.Name)
			if frag == nil {
				continue
			}
			if frag.TypeCondition != "" && frag.TypeCondition != objectType.Name {
				continue
			}
			if !includeNode(state, frag.Directives) {
				continue
			}
			collect(state, objectType, frag.SelectionSet, grouped, visited)
		}
	}
}

// includeNode applies @skip and @include.
func includeNode(state *executionState, directives language.DirectiveList) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if v, ok := directiveIf(state, skip); ok && v {
			return false
		}
	}
	if include := directives.ForName("include"); include != nil {
		if v, ok := directiveIf(state, include); ok && !v {
			return false
		}
	}
	return true
}

func directiveIf(state *executionState, directive *language.Directive) (bool, bool) {
	for _, arg := range directive.Arguments {
		if arg.Name == "if" {
			v, ok := valueFromAST(arg.Value, state.variables).(bool)
			return v, ok
		}
	}
	return false, false
}
