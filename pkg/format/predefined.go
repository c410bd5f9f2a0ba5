package format

// EnUS returns a Format configured for US English (en-US).
func EnUS() *Format {
	return New()
}

// EnGB returns a Format configured for British English (en-GB).
func EnGB() *Format {
	return New(
		WithCurrency("£", "before"),
		WithDateLayouts("02/01/2006", "15:04", "02/01/2006 15:04"),
	)
}

// DeDE returns a Format configured for German (de-DE).
func DeDE() *Format {
	return New(
		WithSeparators(",", "."),
		WithCurrency("€", "after"),
		WithDateLayouts("02.01.2006", "15:04", "02.01.2006 15:04"),
	)
}

// FrFR returns a Format configured for French (fr-FR).
func FrFR() *Format {
	return New(
		WithSeparators(",", " "),
		WithCurrency("€", "after"),
		WithDateLayouts("02/01/2006", "15:04", "02/01/2006 15:04"),
	)
}

// JaJP returns a Format configured for Japanese (ja-JP).
func JaJP() *Format {
	return New(
		WithCurrency("¥", "before"),
		WithDateLayouts("2006/01/02", "15:04", "2006/01/02 15:04"),
	)
}

// ForLocale returns a predefined Format for common locales, falling back to
// EnUS for everything else.
func ForLocale(locale string) *Format {
	switch locale {
	case "en-GB":
		return EnGB()
	case "de", "de-DE", "de-AT":
		return DeDE()
	case "fr", "fr-FR":
		return FrFR()
	case "ja", "ja-JP":
		return JaJP()
	default:
		return EnUS()
	}
}
