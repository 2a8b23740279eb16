package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogAttrs(t *testing.T) {
	attrs := LogAttrs()
	assert.Len(t, attrs, 4)
	assert.Equal(t, "version", attrs[0])
	assert.NotEmpty(t, attrs[1])
	assert.Equal(t, "revision", attrs[2])
	assert.LessOrEqual(t, len(Revision()), length+len("-dirty"))
}
