package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionWithTitle_PrependsHeader(t *testing.T) {
	p := PRDescriptionPayload{Description: "adds caching to the fetch path"}
	assert.Equal(t, DescriptionSectionHeader+"adds caching to the fetch path", p.DescriptionWithTitle())
}

func TestDescriptionWithTitle_EmptyDescription(t *testing.T) {
	p := PRDescriptionPayload{}
	assert.Equal(t, DescriptionSectionHeader, p.DescriptionWithTitle())
}
