package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title  string `json:"title" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=active draft closed"`
	Color  string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

func TestDetailsUsesJSONNames(t *testing.T) {
	err := Struct(sample{Status: "archived", Color: "blue"})
	require.Error(t, err)

	details := Details(err)
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "must be one of: active draft closed", details["status"])
	assert.Equal(t, "must be a hex color", details["color"])
}

func TestDetailsPassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, map[string]string{"_": "boom"}, Details(errors.New("boom")))
	assert.Nil(t, Details(nil))
}

func TestStructAcceptsValid(t *testing.T) {
	assert.NoError(t, Struct(sample{Title: "Engineer", Status: "draft", Color: "#3b82f6"}))
}
