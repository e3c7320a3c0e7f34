// Package track defines the Track record shared by the API, the stores and the importers.
package track

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Track describes one audio item known to the service.
// BPM and DurationSeconds are nil when unknown.
type Track struct {
	ID              string   `json:"id" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Artist          string   `json:"artist" validate:"required"`
	SourceURL       string   `json:"source_url" validate:"required"`
	AudioPath       string   `json:"audio_path" validate:"required"`
	CoverArtURL     string   `json:"cover_art_url" validate:"required"`
	BPM             *float64 `json:"bpm,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

// ValidationError lists the JSON names of the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid track: missing %s", strings.Join(e.Fields, ", "))
}

var validate = newValidator()

// newValidator reports fields by their JSON name so errors match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every required field is set.
// Returns a *ValidationError naming the offending fields.
func (t *Track) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating track: %w", err)
	}

	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fe.Field()
	}
	return &ValidationError{Fields: fields}
}
