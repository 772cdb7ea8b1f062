// Package schemas validates raw profile and job documents against embedded
// JSON Schemas before they are decoded.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names
const (
	Profile = "profile"
	Job     = "job"
)

//go:embed *.schema.json
var schemaFS embed.FS

var (
	compiled   = map[string]*gojsonschema.Schema{}
	compileErr = map[string]error{}
	compileMu  sync.Mutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s document failed schema validation:\n", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Names lists the embedded schemas
func Names() []string {
	return []string{Job, Profile}
}

// ValidateProfile checks a raw profile document
func ValidateProfile(data []byte) error {
	return Validate(Profile, data)
}

// ValidateJob checks a raw job description document
func ValidateJob(data []byte) error {
	return Validate(Job, data)
}

// Validate checks data against the named embedded schema. Malformed JSON is
// reported as a SchemaLoadError, schema violations as a ValidationError.
func Validate(name string, data []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "document is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

func load(name string) (*gojsonschema.Schema, error) {
	compileMu.Lock()
	defer compileMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}
	if err, ok := compileErr[name]; ok {
		return nil, err
	}

	raw, err := schemaFS.ReadFile(name + ".schema.json")
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "unknown schema", Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		loadErr := &SchemaLoadError{Name: name, Message: "schema does not compile", Cause: err}
		compileErr[name] = loadErr
		return nil, loadErr
	}
	compiled[name] = schema
	return schema, nil
}
