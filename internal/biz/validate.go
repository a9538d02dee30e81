package biz

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form/json name rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateEdit checks a submitted edit form. Text fields are trimmed first, so
// whitespace-only values count as missing. On success the returned bundle holds
// every value needed to overwrite the record; on failure the field errors are
// keyed by form field name.
func ValidateEdit(in EditInput) (*EditValues, FieldErrors) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Review = strings.TrimSpace(in.Review)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, FieldErrors{"form": err.Error()}
		}
		fields := make(FieldErrors, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return nil, fields
	}

	values := &EditValues{
		Title:       in.Title,
		Year:        *in.Year,
		Description: in.Description,
		Rating:      *in.Rating,
		Ranking:     *in.Ranking,
		ImageURL:    in.ImageURL,
	}
	if in.Review != "" {
		review := in.Review
		values.Review = &review
	}
	return values, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// editInputFrom presents a stored movie as edit form defaults.
func editInputFrom(m *Movie) *EditInput {
	in := &EditInput{
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
	}
	if m.Year > 0 {
		year := m.Year
		in.Year = &year
	}
	if m.Rating != nil {
		rating := *m.Rating
		in.Rating = &rating
	}
	if m.Ranking != nil {
		ranking := *m.Ranking
		in.Ranking = &ranking
	}
	if m.Review != nil {
		in.Review = *m.Review
	}
	return in
}
