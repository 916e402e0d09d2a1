package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Stream string   `json:"stream" validate:"required"`
	Limit  int      `json:"max_colleges" validate:"omitempty,min=1,max=50"`
	Marks  *float64 `json:"maths_marks_percent" validate:"required"`
	Tags   []string `json:"tags" validate:"omitempty,unique"`
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}

func TestStruct_Valid(t *testing.T) {
	m := 72.5
	assert.NoError(t, Struct(&sample{Stream: "Science", Marks: &m}))
	assert.NoError(t, Struct(&sample{Stream: "Arts", Limit: 50, Marks: &m, Tags: []string{"a", "b"}}))
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(&sample{Limit: 99})
	require.Error(t, err)

	var ve *RequestValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 3)

	byField := map[string]FieldError{}
	for _, f := range ve.Fields {
		byField[f.Field] = f
	}
	assert.Equal(t, "stream is required", byField["stream"].Message)
	assert.Equal(t, "max", byField["max_colleges"].Tag)
	assert.Equal(t, "max_colleges must be at most 50", byField["max_colleges"].Message)
	assert.Equal(t, "maths_marks_percent is required", byField["maths_marks_percent"].Message)
	assert.Contains(t, err.Error(), "stream is required")
}

func TestStruct_NestedPath(t *testing.T) {
	type item struct {
		City string `json:"city" validate:"required"`
	}
	type wrapper struct {
		Items []item `json:"colleges" validate:"dive"`
	}
	err := Struct(&wrapper{Items: []item{{City: "Pune"}, {}}})
	require.Error(t, err)

	var ve *RequestValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "colleges[1].city", ve.Fields[0].Field)
}
