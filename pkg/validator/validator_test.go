package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type link struct {
	Name  string `json:"name" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
	Order int    `json:"order" validate:"min=0"`
}

func TestStructValid(t *testing.T) {
	v := New()
	assert.Nil(t, v.Struct(link{Name: "Instagram", URL: "https://instagram.com/clinic", Color: "#06b6d4"}))
}

func TestStructReportsJSONNames(t *testing.T) {
	v := New()
	fields := v.Struct(&link{URL: "not a url", Color: "blue", Order: -1})

	assert.Equal(t, map[string]string{
		"name":  "name is required",
		"url":   "url must be a valid URL",
		"color": "color must be a hex color",
		"order": "order must be at least 0",
	}, fields)
}
