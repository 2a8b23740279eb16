package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestStatus(t *testing.T) {
	h := New(map[string]Ping{
		"db":    pingFunc(func(context.Context) error { return nil }),
		"cache": pingFunc(func(context.Context) error { return errors.New("down") }),
		"none":  nil,
	})

	status := h.Status(context.Background())
	assert.Equal(t, map[string]bool{"db": true, "cache": false}, status)
	assert.False(t, Healthy(status))
	assert.True(t, Healthy(map[string]bool{"db": true}))
}
