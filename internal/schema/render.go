package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Render produces SDL for the schema. Type names are emitted in
// lexicographic order so output is deterministic; builtin scalars and
// directives are omitted.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		if IsBuiltin(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := s.Types[name]
		switch t.Kind {
		case TypeKindScalar:
			renderScalar(&b, t)
		case TypeKindEnum:
			renderEnum(&b, t)
		case TypeKindObject:
			renderObject(&b, t)
		case TypeKindInputObject:
			renderInput(&b, t)
		}
	}

	if s.QueryType != "" || s.MutationType != "" {
		b.WriteString("schema {\n")
		if s.QueryType != "" {
			fmt.Fprintf(&b, "  query: %s\n", s.QueryType)
		}
		if s.MutationType != "" {
			fmt.Fprintf(&b, "  mutation: %s\n", s.MutationType)
		}
		b.WriteString("}\n")
	}

	return b.String()
}

func renderScalar(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description)
	fmt.Fprintf(b, "scalar %s\n\n", t.Name)
}

func renderEnum(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description)
	fmt.Fprintf(b, "enum %s {\n", t.Name)
	for _, v := range t.EnumValues {
		fmt.Fprintf(b, "  %s\n", v)
	}
	b.WriteString("}\n\n")
}

func renderObject(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description)
	fmt.Fprintf(b, "type %s {\n", t.Name)
	for _, f := range t.Fields {
		fmt.Fprintf(b, "  %s%s: %s\n", f.Name, renderArguments(f.Arguments), renderTypeRef(f.Type))
	}
	b.WriteString("}\n\n")
}

func renderInput(b *strings.Builder, t *Type) {
	renderDescription(b, t.Description)
	fmt.Fprintf(b, "input %s {\n", t.Name)
	for _, v := range t.InputFields {
		fmt.Fprintf(b, "  %s: %s\n", v.Name, renderTypeRef(v.Type))
	}
	b.WriteString("}\n\n")
}

func renderArguments(args []*InputValue) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%s: %s", a.Name, renderTypeRef(a.Type))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderTypeRef(t *TypeRef) string {
	switch t.Kind {
	case TypeRefKindNonNull:
		return renderTypeRef(t.OfType) + "!"
	case TypeRefKindList:
		return "[" + renderTypeRef(t.OfType) + "]"
	default:
		return t.Named
	}
}

func renderDescription(b *strings.Builder, desc string) {
	if desc == "" {
		return
	}
	b.WriteString("\"\"\"\n")
	b.WriteString(strings.ReplaceAll(desc, `"`, `\"`))
	b.WriteString("\n\"\"\"\n")
}
