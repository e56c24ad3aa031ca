package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for SIFU file loading.
const (
	ErrCodeNotFound     = "E_NOT_FOUND"
	ErrCodeSchema       = "E_SCHEMA"
	ErrCodeDecodeFailed = "E_DECODE"
	ErrCodeInvalidSIFU  = "E_INVALID_SIFU"
)

// LoadError represents an error that occurred during SIFU file loading.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

// LoadSIFUFile reads a SIFU definition, validates it against the embedded
// CUE schema, and builds the domain model plus effective assumptions.
//
// Schema validation runs before decoding so malformed files are rejected
// with positioned CUE errors instead of partial zero-valued records.
func LoadSIFUFile(path string) (*sifu.SIFU, sifu.Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sifu.Assumptions{}, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	if err := validateAgainstSchema(path, data); err != nil {
		return nil, sifu.Assumptions{}, err
	}

	var doc sifu.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sifu.Assumptions{}, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error()}
	}

	s, asm, err := doc.Build()
	if err != nil {
		// Keep the domain error wrapped so validation codes stay visible
		// to errors.As.
		return nil, sifu.Assumptions{}, fmt.Errorf("%s: %s: %w", ErrCodeInvalidSIFU, path, err)
	}
	return s, asm, nil
}

// validateAgainstSchema unifies the YAML document with the embedded CUE
// schema and checks the result is concrete and consistent.
func validateAgainstSchema(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return &LoadError{Code: ErrCodeSchema, Path: "schema.cue", Message: cueerrors.Details(err, nil)}
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error()}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: cueerrors.Details(err, nil)}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: cueerrors.Details(err, nil)}
	}
	return nil
}
