// Package validate checks structural limits on a parsed query document
// before any resolver runs. Its only rule today is the nesting-depth bound,
// the cheapest defense against adversarial recursive-relation queries whose
// fan-out grows exponentially with depth.
package validate

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/fernql/fernql/internal/language"
)

// Depth walks every operation of doc and records an error for each branch
// whose nesting exceeds maxDepth. A nested field selection or a fragment
// spread increases depth by one; inline fragments do not. Descent stops at
// the offending node, sibling branches are still checked. An empty result
// means the document may execute.
//
// Introspection entry points (__schema, __type) are exempt: their shape is
// fixed by the meta schema, the standard client introspection query nests
// well past any sane bound, and nothing under them fans out into storage.
func Depth(doc *language.QueryDocument, maxDepth int) language.ErrorList {
	w := &depthWalker{doc: doc, max: maxDepth}
	for _, op := range doc.Operations {
		w.selectionSet(op.SelectionSet, 0, nil, make(map[string]bool))
	}
	return w.errs
}

type depthWalker struct {
	doc  *language.QueryDocument
	max  int
	errs language.ErrorList
}

func (w *depthWalker) selectionSet(selections language.SelectionSet, depth int, path ast.Path, visited map[string]bool) {
	for _, selection := range selections {
		switch sel := selection.(type) {
		case *language.Field:
			if depth == 0 && (sel.Name == "__schema" || sel.Name == "__type") {
				continue
			}
			name := sel.Alias
			if name == "" {
				name = sel.Name
			}
			fieldPath := append(append(ast.Path{}, path...), ast.PathName(name))
			if depth+1 > w.max {
				w.errs = append(w.errs, &language.Error{
					Message: fmt.Sprintf("field %q exceeds maximum operation depth of %d", name, w.max),
					Path:    fieldPath,
				})
				continue
			}
			w.selectionSet(sel.SelectionSet, depth+1, fieldPath, visited)

		case *language.InlineFragment:
			w.selectionSet(sel.SelectionSet, depth, path, visited)

		case *language.FragmentSpread:
			// visited holds only the spreads on the current descent stack,
			// so a fragment reused on a deeper branch is re-checked at that
			// branch's own depth while cycles still terminate.
			if visited[sel.Name] {
				continue
			}
			frag := w.doc.Fragments.ForName(sel.Name)
			if frag == nil {
				continue
			}
			if depth+1 > w.max {
				w.errs = append(w.errs, &language.Error{
					Message: fmt.Sprintf("fragment %q exceeds maximum operation depth of %d", sel.Name, w.max),
					Path:    append(append(ast.Path{}, path...), ast.PathName(sel.Name)),
				})
				continue
			}
			visited[sel.Name] = true
			w.selectionSet(frag.SelectionSet, depth+1, path, visited)
			delete(visited, sel.Name)
		}
	}
}
