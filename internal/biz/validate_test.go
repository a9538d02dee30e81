package biz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEdit_Valid(t *testing.T) {
	in := validEdit()
	in.Title = "  Phone Booth  "
	in.Review = "  "

	values, fields := ValidateEdit(in)
	require.Nil(t, fields)
	assert.Equal(t, "Phone Booth", values.Title)
	assert.Equal(t, 2002, values.Year)
	assert.InDelta(t, 7.3, values.Rating, 0.0001)
	assert.Equal(t, 4, values.Ranking)
	assert.Nil(t, values.Review, "blank review is stored as absent")
}

func TestValidateEdit_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EditInput)
		field  string
	}{
		{"missing title", func(in *EditInput) { in.Title = "" }, "title"},
		{"missing year", func(in *EditInput) { in.Year = nil }, "year"},
		{"zero year", func(in *EditInput) { in.Year = intPtr(0) }, "year"},
		{"missing description", func(in *EditInput) { in.Description = "\n" }, "description"},
		{"missing rating", func(in *EditInput) { in.Rating = nil }, "rating"},
		{"zero rating", func(in *EditInput) { in.Rating = float64Ptr(0) }, "rating"},
		{"missing ranking", func(in *EditInput) { in.Ranking = nil }, "ranking"},
		{"missing image", func(in *EditInput) { in.ImageURL = "" }, "image_url"},
		{"long review", func(in *EditInput) { in.Review = strings.Repeat("x", 251) }, "review"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEdit()
			tt.mutate(&in)

			values, fields := ValidateEdit(in)
			assert.Nil(t, values)
			require.Contains(t, fields, tt.field)
			assert.Len(t, fields, 1)
		})
	}
}

func TestValidateEdit_RatingHasNoUpperBound(t *testing.T) {
	in := validEdit()
	in.Rating = float64Ptr(11)

	values, fields := ValidateEdit(in)
	require.Nil(t, fields)
	assert.InDelta(t, 11, values.Rating, 0.0001)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{"year": "this field is required", "title": "this field is required"}}
	assert.Equal(t, "invalid movie: title: this field is required; year: this field is required", err.Error())
}
