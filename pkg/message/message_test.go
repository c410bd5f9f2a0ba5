package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/message"
	"github.com/dmitrymomot/intl/pkg/plural"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()

		m, err := message.Compile("hello world")
		require.NoError(t, err)
		assert.Equal(t, 1, m.Branches())
		assert.Equal(t, "hello world", m.Render(message.Args{}, nil))
	})

	t.Run("splits plural branches on pipe", func(t *testing.T) {
		t.Parallel()

		m, err := message.Compile("no apples | one apple | {n} apples")
		require.NoError(t, err)
		assert.Equal(t, 3, m.Branches())
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		a, err := message.Compile("hi {name}")
		require.NoError(t, err)
		b, err := message.Compile("hi {name}")
		require.NoError(t, err)

		args := message.Args{Named: map[string]any{"name": "x"}}
		assert.Equal(t, a.Render(args, nil), b.Render(args, nil))
	})

	t.Run("rejects unbalanced braces", func(t *testing.T) {
		t.Parallel()

		_, err := message.Compile("hello {name")
		require.ErrorIs(t, err, message.ErrUnbalancedBraces)

		_, err = message.Compile("hello name}")
		require.ErrorIs(t, err, message.ErrUnbalancedBraces)

		_, err = message.Compile("hello {na{me}")
		require.ErrorIs(t, err, message.ErrUnbalancedBraces)
	})

	t.Run("rejects empty placeholder", func(t *testing.T) {
		t.Parallel()

		_, err := message.Compile("hello {}")
		require.ErrorIs(t, err, message.ErrEmptyPlaceholder)
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("named arguments", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("hello {name}, welcome to {place}")
		got := m.Render(message.Args{Named: map[string]any{
			"name":  "Ada",
			"place": "Gothenburg",
		}}, nil)
		assert.Equal(t, "hello Ada, welcome to Gothenburg", got)
	})

	t.Run("positional arguments", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("{0} beats {1}")
		got := m.Render(message.Args{Positional: []any{"rock", "scissors"}}, nil)
		assert.Equal(t, "rock beats scissors", got)
	})

	t.Run("named and positional in one call", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("{name} is caller {0}")
		got := m.Render(message.Args{
			Named:      map[string]any{"name": "Ada"},
			Positional: []any{7},
		}, nil)
		assert.Equal(t, "Ada is caller 7", got)
	})

	t.Run("literal token renders its text", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("brace yourself: {'{'}{count}{'}'}")
		got := m.Render(message.Args{Named: map[string]any{"count": 3}}, nil)
		assert.Equal(t, "brace yourself: {3}", got)
	})

	t.Run("missing argument renders empty", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("hello {name}!")
		assert.Equal(t, "hello !", m.Render(message.Args{}, nil))
	})

	t.Run("missing positional renders empty", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("slot {2} here")
		got := m.Render(message.Args{Positional: []any{"a"}}, nil)
		assert.Equal(t, "slot  here", got)
	})

	t.Run("multi-branch message without count uses branch zero", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("car | cars")
		assert.Equal(t, "car", m.Render(message.Args{}, nil))
	})
}

func TestRenderPlural(t *testing.T) {
	t.Parallel()

	t.Run("binds count as implicit n", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("no apples | one apple | {n} apples")
		assert.Equal(t, "no apples", m.RenderPlural(0, plural.Default, message.Args{}, nil))
		assert.Equal(t, "one apple", m.RenderPlural(1, plural.Default, message.Args{}, nil))
		assert.Equal(t, "5 apples", m.RenderPlural(5, plural.Default, message.Args{}, nil))
	})

	t.Run("explicit n argument wins over the implicit one", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("{n} apples")
		got := m.RenderPlural(5, plural.Default, message.Args{
			Named: map[string]any{"n": "five"},
		}, nil)
		assert.Equal(t, "five apples", got)
	})

	t.Run("clamps rule result to available branches", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("one | many")
		overflow := func(count, branches int) int { return 99 }
		assert.Equal(t, "many", m.RenderPlural(3, overflow, message.Args{}, nil))
	})

	t.Run("nil rule falls back to the default rule", func(t *testing.T) {
		t.Parallel()

		m := message.MustCompile("car | cars")
		assert.Equal(t, "car", m.RenderPlural(1, nil, message.Args{}, nil))
		assert.Equal(t, "cars", m.RenderPlural(2, nil, message.Args{}, nil))
	})
}
