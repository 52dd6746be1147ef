package action

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// fieldSpec is one required payload field for a tag: its stable error code
// on absence or type mismatch, and the schema its raw JSON value must
// satisfy.
type fieldSpec struct {
	Name   string
	Code   string
	Schema *jsonschema.Schema
}

var (
	intSchema    = compileSchema("int.json", `{"type":"integer"}`)
	stringSchema = compileSchema("string.json", `{"type":"string","minLength":1}`)
)

func compileSchema(name, src string) *jsonschema.Schema {
	url := "mem://" + name
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, strings.NewReader(src)); err != nil {
		panic(err)
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(err)
	}
	return s
}

// extractFields walks specs in order, short-circuiting on the first field
// that is absent or fails its schema, exactly matching the original
// handlers' field-by-field validation order.
func extractFields(payload map[string]any, specs []fieldSpec) (map[string]any, string, string, bool) {
	out := map[string]any{}
	for _, spec := range specs {
		v, ok := payload[spec.Name]
		if !ok {
			return nil, spec.Code, fmt.Sprintf("%s is required", spec.Name), false
		}
		if err := spec.Schema.Validate(v); err != nil {
			return nil, spec.Code, fmt.Sprintf("%s is required", spec.Name), false
		}
		out[spec.Name] = v
	}
	return out, "", "", true
}
