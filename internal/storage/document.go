package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// MustCompileSchema compiles an embedded JSON Schema. It panics on failure,
// which can only happen if the schema shipped in the binary is malformed.
func MustCompileSchema(name, source string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		panic(fmt.Sprintf("add schema resource %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// ReadJSON loads a JSON document from path into v after validating it
// against schema. It returns false with a nil error when the file does not
// exist. Schema violations and malformed JSON surface as ErrCorruptDocument.
func ReadJSON(path string, schema *jsonschema.Schema, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %v", ErrPersistence, path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, path, err)
	}
	if err := schema.Validate(raw); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, path, schemaFailure(err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, path, err)
	}
	return true, nil
}

// schemaFailure flattens a jsonschema validation error to its leaf causes.
func schemaFailure(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	leaves := leafCauses(ve)
	parts := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		location := leaf.InstanceLocation
		if location == "" {
			location = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, leaf.Message))
	}
	return strings.Join(parts, "; ")
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

// WriteJSON writes v to path as indented JSON, staging to a temp file and
// atomically renaming into place. A crash mid-write leaves either the old or
// the new complete document, never a truncated one.
func WriteJSON(path string, v any) error {
	staged, err := StageJSON(path, v)
	if err != nil {
		return err
	}
	return Commit(staged)
}

// Staged is a fully-written temp file awaiting its atomic rename.
type Staged struct {
	tmp   string
	final string
}

// StageJSON writes v as indented JSON to a temp file alongside path. The
// document does not become visible until Commit renames it into place.
func StageJSON(path string, v any) (Staged, error) {
	data, err := encodeJSON(v)
	if err != nil {
		return Staged{}, fmt.Errorf("%w: encode %s: %v", ErrPersistence, path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return Staged{}, fmt.Errorf("%w: write %s: %v", ErrPersistence, tmp, err)
	}
	return Staged{tmp: tmp, final: path}, nil
}

// Commit renames staged files into place. On failure the remaining temp
// files are removed and ErrPersistence is returned.
func Commit(staged ...Staged) error {
	for i, s := range staged {
		if err := os.Rename(s.tmp, s.final); err != nil {
			for _, rest := range staged[i:] {
				os.Remove(rest.tmp)
			}
			return fmt.Errorf("%w: rename %s: %v", ErrPersistence, s.final, err)
		}
	}
	return nil
}

// Discard removes the staged temp file without committing it.
func (s Staged) Discard() {
	if s.tmp != "" {
		os.Remove(s.tmp)
	}
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
