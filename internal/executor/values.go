package executor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fernql/fernql/internal/language"
	"github.com/fernql/fernql/internal/schema"
)

// coerceVariableValues coerces the provided variables against the
// operation's variable definitions. A missing or null value for a Non-Null
// variable fails the whole operation before execution.
func coerceVariableValues(s *schema.Schema, op *language.OperationDefinition, variables map[string]any) (map[string]any, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	coerced := make(map[string]any)
	for _, def := range op.VariableDefinitions {
		name := def.Variable
		val, ok := variables[name]
		if !ok {
			if def.DefaultValue != nil {
				val = astValueToGo(def.DefaultValue)
			} else if def.Type.NonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", name, def.Type.String())
			} else {
				continue
			}
		}
		if val == nil && def.Type.NonNull {
			return nil, fmt.Errorf("variable $%s of type %s cannot be null", name, def.Type.String())
		}
		cv, err := coerceValue(val, typeRefFromAST(def.Type))
		if err != nil {
			return nil, fmt.Errorf("variable $%s of type %s cannot be coerced: %v", name, def.Type.String(), err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// coerceArgumentValues coerces the arguments of one field. Problems become
// located errors rather than aborting the request.
func coerceArgumentValues(fieldDef *schema.Field, arguments language.ArgumentList, state *executionState, path Path) map[string]any {
	coerced := make(map[string]any)
	for _, arg := range arguments {
		var argDef *schema.InputValue
		for _, a := range fieldDef.Arguments {
			if a.Name == arg.Name {
				argDef = a
				break
			}
		}
		if argDef == nil {
			continue
		}
		cv, err := coerceValue(valueFromAST(arg.Value, state.variables), argDef.Type)
		if err != nil {
			state.addError(fmt.Sprintf("argument %q cannot be coerced: %v", arg.Name, err), path)
			continue
		}
		coerced[arg.Name] = cv
	}
	for _, argDef := range fieldDef.Arguments {
		if _, ok := coerced[argDef.Name]; ok {
			continue
		}
		if argDef.DefaultValue != nil {
			coerced[argDef.Name] = argDef.DefaultValue
		} else if schema.IsNonNull(argDef.Type) {
			state.addError(fmt.Sprintf("argument %q of required type was not provided", argDef.Name), path)
		}
	}
	return coerced
}

// valueFromAST converts an AST value to a Go value, substituting variables.
func valueFromAST(value *language.Value, variables map[string]any) any {
	if value == nil {
		return nil
	}
	if value.Kind == language.Variable {
		name := strings.TrimPrefix(value.Raw, "$")
		return variables[name]
	}
	return astValueToGo(value)
}

func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, f := range value.Children {
			m[f.Name] = astValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}

func typeRefFromAST(t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return schema.NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return schema.NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return schema.ListType(typeRefFromAST(t.Elem))
	}
	return nil
}

// coerceValue coerces value toward the target input type.
func coerceValue(value any, target *schema.TypeRef) (any, error) {
	if schema.IsNonNull(target) {
		if value == nil {
			return nil, fmt.Errorf("cannot provide null for non-null type")
		}
		return coerceValue(value, schema.Unwrap(target))
	}
	if value == nil {
		return nil, nil
	}
	if schema.IsList(target) {
		inner := schema.Unwrap(target)
		items, ok := value.([]any)
		if !ok {
			// single value becomes a one-element list
			cv, err := coerceValue(value, inner)
			if err != nil {
				return nil, err
			}
			return []any{cv}, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			cv, err := coerceValue(item, inner)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	}

	switch schema.NamedTypeOf(target) {
	case "Int":
		return coerceToInt(value)
	case "Float":
		return coerceToFloat(value)
	case "String", "ID", "UUID":
		return coerceToString(value)
	case "Boolean":
		return coerceToBoolean(value)
	default:
		// enums, input objects and custom scalars pass through; the
		// runtime validates them at resolution time
		return value, nil
	}
}

func coerceToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		if iv, err := strconv.Atoi(v); err == nil {
			return iv, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Int", value, value)
}

func coerceToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if fv, err := strconv.ParseFloat(v, 64); err == nil {
			return fv, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Float", value, value)
}

func coerceToString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return fmt.Sprintf("%v", value), nil
	}
}

func coerceToBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Boolean", value, value)
}
