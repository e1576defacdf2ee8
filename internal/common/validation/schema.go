package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// NumericPattern matches the decimal integer strings stages coerce with strconv.
const NumericPattern = `^\s*[+-]?[0-9]+\s*$`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSON schema applied to a flat properties mapping.
type Schema struct {
	schema *gojsonschema.Schema
}

// NewSchema compiles schemaJSON.
func NewSchema(schemaJSON string) (*Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: schema}, nil
}

// MustSchema is NewSchema for package-level schemas known at compile time.
func MustSchema(schemaJSON string) *Schema {
	s, err := NewSchema(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// RequiredNumericSchema builds a schema requiring every key in fields to be a
// decimal integer string.
func RequiredNumericSchema(fields ...string) string {
	props := make([]string, 0, len(fields))
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		props = append(props, fmt.Sprintf(`%q: {"type": "string", "pattern": %q}`, f, NumericPattern))
		quoted = append(quoted, fmt.Sprintf("%q", f))
	}
	return fmt.Sprintf(`{"type": "object", "required": [%s], "properties": {%s}, "additionalProperties": {"type": "string"}}`,
		strings.Join(quoted, ", "), strings.Join(props, ", "))
}

// ValidateProperties validates a string mapping against the schema.
func (s *Schema) ValidateProperties(props map[string]string) (*ValidationResult, error) {
	doc := make(map[string]interface{}, len(props))
	for k, v := range props {
		doc[k] = v
	}

	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate properties: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if missing, ok := re.Details()["property"].(string); ok {
				field = missing
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: re.Description(),
			Code:    strings.ToUpper(re.Type()),
		})
	}
	sort.Slice(out.Errors, func(i, j int) bool { return out.Errors[i].Field < out.Errors[j].Field })
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
