package engine

import "fmt"

// ParamType is the declared value type of a parameter, used for registry
// introspection and CLI help. It has no runtime behavior of its own.
type ParamType string

const (
	TypeFloat      ParamType = "float"
	TypeInt        ParamType = "int"
	TypeBool       ParamType = "bool"
	TypeString     ParamType = "string"
	TypeStringList ParamType = "stringList"
)

// ParamSpec statically declares one parameter an algorithm accepts.
type ParamSpec struct {
	Name        string
	Description string
	Type        ParamType
	Required    bool
	Default     any
}

// ValidateRequired checks that every required parameter is present in the
// context, returning one message per violation. It is the default
// parameter-validation policy; algorithms with extra constraints call it
// first and append their own messages.
func ValidateRequired(specs []ParamSpec, c *Context) []string {
	var violations []string
	for _, spec := range specs {
		if spec.Required && !c.Has(spec.Name) {
			violations = append(violations, fmt.Sprintf("missing required parameter %q", spec.Name))
		}
	}
	return violations
}
