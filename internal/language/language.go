// Package language wraps the gqlparser query parser and re-exports the AST
// types the engine consumes, so the rest of the codebase does not import the
// parser directly.
package language

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParseQuery parses a GraphQL query document. Syntax errors come back as
// *gqlerror.Error values with source locations.
func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Error is a located GraphQL error as produced by the parser and validator.
type Error = gqlerror.Error

// ErrorList is an ordered list of located errors.
type ErrorList = gqlerror.List

// Errorf builds a located Error from a format string.
var Errorf = gqlerror.Errorf
