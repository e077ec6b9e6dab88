package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayload(t *testing.T) {
	t.Run("text is trimmed", func(t *testing.T) {
		p := NewPayload("joke", []byte("  why did the gopher cross the road?\n"))
		assert.Equal(t, "why did the gopher cross the road?", p.Text())
	})

	t.Run("json fields", func(t *testing.T) {
		p := NewPayload("trivia", []byte(`[{"question":{"text":"Capital of France?"},"correctAnswer":"Paris"}]`))
		assert.True(t, p.IsJSON())
		assert.Equal(t, "Capital of France?", p.Get("0.question.text").String())
		assert.Equal(t, "Paris", p.Get("0.correctAnswer").String())
		assert.False(t, p.Get("0.missing").Exists())
	})

	t.Run("invalid json", func(t *testing.T) {
		p := NewPayload("catfact", []byte("<html>oops</html>"))
		assert.False(t, p.IsJSON())
		assert.False(t, p.Get("fact").Exists())
	})
}
