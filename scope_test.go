package intl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl"
)

func TestUseErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil context fails with setup context error", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t)
		_, err := inst.Use(nil, intl.UseConfig{})
		require.ErrorIs(t, err, intl.ErrMustBeCalledInSetup)
	})

	t.Run("legacy mode rejects local scope", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithLegacyMode())
		_, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{Scope: intl.ScopeLocal})
		require.ErrorIs(t, err, intl.ErrNotAvailableInLegacyMode)

		_, err = inst.Use(intl.NewSetupContext(nil), intl.UseConfig{Scope: intl.ScopeParent})
		require.ErrorIs(t, err, intl.ErrNotAvailableInLegacyMode)
	})

	t.Run("legacy mode still serves the global scope", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithLegacyMode())
		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{Scope: intl.ScopeGlobal})
		require.NoError(t, err)
		assert.Same(t, inst.Global(), c)
	})
}

func TestGlobalScope(t *testing.T) {
	t.Parallel()

	t.Run("returns the identical global composer", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t)
		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{Scope: intl.ScopeGlobal})
		require.NoError(t, err)
		assert.Same(t, inst.Global(), c)
	})

	t.Run("merges contributed resources into the global store", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithMessages(map[string]map[string]any{
			"en": {"shared": map[string]any{"x": "one"}},
		}))

		_, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{
			Scope: intl.ScopeGlobal,
			Messages: map[string]map[string]any{
				"en": {"shared": map[string]any{"y": "two"}},
			},
		})
		require.NoError(t, err)

		// The global tree now holds the deep-merged union.
		assert.Equal(t, "one", inst.Global().T("shared.x"))
		assert.Equal(t, "two", inst.Global().T("shared.y"))
	})
}

func TestLocalScope(t *testing.T) {
	t.Parallel()

	t.Run("own messages win over global", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithMessages(map[string]map[string]any{
			"en": {"title": "Global"},
		}))

		ctx := intl.NewSetupContext(nil)
		c, err := inst.Use(ctx, intl.UseConfig{
			Messages: map[string]map[string]any{
				"en": {"title": "Local"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "Local", c.T("title"))
		assert.Equal(t, "Global", inst.Global().T("title"))
	})

	t.Run("misses fall back to global resources", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithMessages(map[string]map[string]any{
			"en": {"shared": "from global"},
		}))

		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{})
		require.NoError(t, err)

		assert.Equal(t, "from global", c.T("shared"))
	})

	t.Run("root fallback can be disabled", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithMessages(map[string]map[string]any{
			"en": {"shared": "from global"},
		}))

		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{NoFallbackRoot: true})
		require.NoError(t, err)

		assert.Equal(t, "shared", c.T("shared"))
	})

	t.Run("inherits the ancestor locale by default", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithLocale("ja"))
		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{})
		require.NoError(t, err)

		assert.Equal(t, "ja", c.Locale())

		// Tracks later ancestor changes.
		inst.Global().SetLocale("fr")
		assert.Equal(t, "fr", c.Locale())
	})

	t.Run("locale writes on inheriting composers are ignored", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithLocale("ja"))
		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{})
		require.NoError(t, err)

		c.SetLocale("en")
		assert.Equal(t, "ja", c.Locale())
		assert.Equal(t, "ja", inst.Global().Locale())
	})

	t.Run("explicit locale makes the composer independent", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithLocale("ja"))
		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{Locale: "en"})
		require.NoError(t, err)

		assert.Equal(t, "en", c.Locale())

		inst.Global().SetLocale("de")
		assert.Equal(t, "en", c.Locale())

		c.SetLocale("fr")
		assert.Equal(t, "fr", c.Locale())
		assert.Equal(t, "de", inst.Global().Locale())
	})

	t.Run("explicit inherit overrides the locale heuristic", func(t *testing.T) {
		t.Parallel()

		inherit := false
		inst := newTestInstance(t, intl.WithLocale("ja"))
		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{InheritLocale: &inherit})
		require.NoError(t, err)

		// No explicit locale, but inheritance is off: the composer owns an
		// empty locale and only the default fallback applies.
		assert.Equal(t, "", c.Locale())
	})

	t.Run("plural rule overrides stay local", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithMessages(map[string]map[string]any{
			"en": {"tick": "a | b"},
		}))

		c, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{})
		require.NoError(t, err)
		c.RegisterPluralRule("en", func(count, branches int) int { return 1 })

		assert.Equal(t, "b", c.Tc("tick", 1))
		assert.Equal(t, "a", inst.Global().Tc("tick", 1))
	})

	t.Run("teardown disposes the composer", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t)
		ctx := intl.NewSetupContext(nil)
		c, err := inst.Use(ctx, intl.UseConfig{})
		require.NoError(t, err)

		assert.False(t, c.Disposed())
		ctx.Teardown()
		assert.True(t, c.Disposed())
	})
}

func TestParentScope(t *testing.T) {
	t.Parallel()

	t.Run("returns the nearest shared ancestor", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t)

		parentCtx := intl.NewSetupContext(nil)
		parent, err := inst.Use(parentCtx, intl.UseConfig{})
		require.NoError(t, err)

		childCtx := intl.NewSetupContext(parentCtx)
		got, err := inst.Use(childCtx, intl.UseConfig{Scope: intl.ScopeParent})
		require.NoError(t, err)

		assert.Same(t, parent, got)
	})

	t.Run("skips unshared ancestors", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t)

		hiddenCtx := intl.NewSetupContext(nil)
		_, err := inst.Use(hiddenCtx, intl.UseConfig{Unshared: true})
		require.NoError(t, err)

		childCtx := intl.NewSetupContext(hiddenCtx)
		got, err := inst.Use(childCtx, intl.UseConfig{Scope: intl.ScopeParent})
		require.NoError(t, err)

		assert.Same(t, inst.Global(), got)
	})

	t.Run("no ancestor resolves to global without error", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t)
		got, err := inst.Use(intl.NewSetupContext(nil), intl.UseConfig{Scope: intl.ScopeParent})
		require.NoError(t, err)
		assert.Same(t, inst.Global(), got)
	})

	t.Run("torn down ancestors are skipped", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t)

		parentCtx := intl.NewSetupContext(nil)
		_, err := inst.Use(parentCtx, intl.UseConfig{})
		require.NoError(t, err)
		parentCtx.Teardown()

		childCtx := intl.NewSetupContext(parentCtx)
		got, err := inst.Use(childCtx, intl.UseConfig{Scope: intl.ScopeParent})
		require.NoError(t, err)
		assert.Same(t, inst.Global(), got)
	})

	t.Run("nested local composers inherit from the nearest ancestor", func(t *testing.T) {
		t.Parallel()

		inst := newTestInstance(t, intl.WithLocale("en"))

		parentCtx := intl.NewSetupContext(nil)
		parent, err := inst.Use(parentCtx, intl.UseConfig{Locale: "de"})
		require.NoError(t, err)

		childCtx := intl.NewSetupContext(parentCtx)
		child, err := inst.Use(childCtx, intl.UseConfig{})
		require.NoError(t, err)

		// The child reads through to the parent's locale, not the global one.
		assert.Equal(t, "de", child.Locale())

		parent.SetLocale("fr")
		assert.Equal(t, "fr", child.Locale())
	})
}
