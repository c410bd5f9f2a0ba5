package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/intl/pkg/locale"
)

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	available := []string{"pl", "en", "de"}

	t.Run("picks highest quality match", func(t *testing.T) {
		t.Parallel()

		got := locale.ParseAcceptLanguage("en-US,en;q=0.9,pl;q=0.8", available)
		assert.Equal(t, "en", got)
	})

	t.Run("empty header returns first available", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "pl", locale.ParseAcceptLanguage("", available))
	})

	t.Run("no available locales returns empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", locale.ParseAcceptLanguage("en", nil))
	})

	t.Run("base language matches regional variant", func(t *testing.T) {
		t.Parallel()

		got := locale.ParseAcceptLanguage("de-AT", []string{"en", "de"})
		assert.Equal(t, "de", got)
	})

	t.Run("exact match beats base match of equal quality", func(t *testing.T) {
		t.Parallel()

		got := locale.ParseAcceptLanguage("de-AT,de;q=1.0", []string{"de-AT", "de"})
		assert.Equal(t, "de-AT", got)
	})

	t.Run("wildcard and malformed parts are ignored", func(t *testing.T) {
		t.Parallel()

		got := locale.ParseAcceptLanguage("*,;q=0.5,en;q=0.7", available)
		assert.Equal(t, "en", got)
	})

	t.Run("no match falls back to first available", func(t *testing.T) {
		t.Parallel()

		got := locale.ParseAcceptLanguage("fr,it;q=0.9", available)
		assert.Equal(t, "pl", got)
	})

	t.Run("invalid quality values default to 1", func(t *testing.T) {
		t.Parallel()

		got := locale.ParseAcceptLanguage("de;q=nope,en;q=0.5", available)
		assert.Equal(t, "de", got)
	})
}
