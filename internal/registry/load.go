package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// facilityFile is the decoded shape of a validated facility file.
type facilityFile struct {
	Facilities []Entry `json:"facilities"`
}

// LoadFile reads a YAML (.yaml, .yml) or CUE (.cue) facility file and
// returns the registry it describes.
//
// Example YAML:
//
//	facilities:
//	  - facility_id: FAC_001
//	    zone: Asia/Kolkata
//	    nominal_offset_hours: 5.5
//	    abbreviation: IST
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facility file: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the registry schema and builds a registry.
// The extension of name selects the decoder.
func Parse(name string, data []byte) (*Registry, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile registry schema: %w", err)
	}

	var value cue.Value
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ValidationError{Code: ErrCodeSchema, Message: fmt.Sprintf("parse YAML: %v", err), Source: name}
		}
		if raw == nil {
			return nil, &ValidationError{Code: ErrCodeSchema, Message: "facility file is empty", Source: name}
		}
		value = ctx.Encode(raw)
	case ".cue":
		value = ctx.CompileBytes(data, cue.Filename(name))
	default:
		return nil, &ValidationError{
			Code:    ErrCodeUnsupportedFile,
			Message: fmt.Sprintf("unsupported extension %q (want .yaml, .yml or .cue)", filepath.Ext(name)),
			Source:  name,
		}
	}
	if err := value.Err(); err != nil {
		return nil, schemaError(name, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Registry")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, schemaError(name, err)
	}

	var file facilityFile
	if err := unified.Decode(&file); err != nil {
		return nil, schemaError(name, err)
	}

	reg, err := New(file.Facilities...)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Source = name
		}
		return nil, err
	}
	return reg, nil
}

func schemaError(source string, err error) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeSchema,
		Message: strings.TrimSpace(cueerrors.Details(err, nil)),
		Source:  source,
	}
}
