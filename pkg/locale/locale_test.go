package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/intl/pkg/locale"
)

func TestBase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en", locale.Base("en-US"))
	assert.Equal(t, "de", locale.Base("de-DE-bavarian"))
	assert.Equal(t, "en", locale.Base("en"))
	assert.Equal(t, "", locale.Base(""))
}

func TestParents(t *testing.T) {
	t.Parallel()

	t.Run("region tag falls back to base language", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"en"}, locale.Parents("en-US"))
	})

	t.Run("language without region has no parents", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, locale.Parents("en"))
	})

	t.Run("unparsable tag degrades by splitting on dash", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"xx-yy", "xx"}, locale.Parents("xx-yy-zz"))
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("active locale always comes first", func(t *testing.T) {
		t.Parallel()

		chain := locale.Chain("ja", []string{"en"}, "en")
		assert.Equal(t, "ja", chain[0])
	})

	t.Run("inserts region parents after the active locale", func(t *testing.T) {
		t.Parallel()

		chain := locale.Chain("en-US", []string{"fr"}, "")
		assert.Equal(t, []string{"en-US", "en", "fr"}, chain)
	})

	t.Run("appends the default locale last", func(t *testing.T) {
		t.Parallel()

		chain := locale.Chain("ja", []string{"fr"}, "en")
		assert.Equal(t, []string{"ja", "fr", "en"}, chain)
	})

	t.Run("deduplicates preserving first occurrence", func(t *testing.T) {
		t.Parallel()

		chain := locale.Chain("en", []string{"en", "de", "en"}, "en")
		assert.Equal(t, []string{"en", "de"}, chain)
	})

	t.Run("skips empty entries", func(t *testing.T) {
		t.Parallel()

		chain := locale.Chain("en", []string{""}, "")
		assert.Equal(t, []string{"en"}, chain)
	})
}
