package plural

import "strings"

// Rule selects which branch of a multi-branch message to use for a count.
// It receives the count and the number of branches the message defines and
// returns a branch index. Callers clamp the result to [0, branches).
type Rule func(count, branches int) int

// Default is a locale-agnostic cardinal rule. With three or more branches
// the layout is zero | singular | plural; with two branches it degrades to
// singular | plural.
var Default Rule = func(count, branches int) int {
	abs := count
	if abs < 0 {
		abs = -abs
	}
	if branches == 2 {
		if abs == 1 {
			return 0
		}
		return 1
	}
	if count == 0 {
		return 0
	}
	if abs == 1 {
		return 1
	}
	return 2
}

// English covers English and most Germanic languages for branch counts of
// two ("car|cars") or three ("none|one|many").
var English Rule = func(count, branches int) int {
	abs := count
	if abs < 0 {
		abs = -abs
	}
	if branches == 2 {
		if abs == 1 {
			return 0
		}
		return 1
	}
	if count == 0 {
		return 0
	}
	if abs == 1 {
		return 1
	}
	return 2
}

// Slavic implements the cardinal rule shared by Russian, Polish, Czech,
// Ukrainian and related languages. With four branches the layout is
// zero | ends-in-1 | ends-in-2..4 | many; with fewer branches the higher
// categories collapse into the last branch.
var Slavic Rule = func(count, branches int) int {
	if count == 0 {
		return 0
	}

	abs := count
	if abs < 0 {
		abs = -abs
	}

	teen := abs%100 > 10 && abs%100 < 20
	endsInOne := abs%10 == 1

	if !teen && endsInOne {
		return 1
	}
	if !teen && abs%10 >= 2 && abs%10 <= 4 {
		return 2
	}
	if branches < 4 {
		return 2
	}
	return 3
}

// Romance covers French, Italian, Portuguese and Spanish: zero and one share
// the singular branch.
var Romance Rule = func(count, branches int) int {
	if count == 0 || count == 1 || count == -1 {
		if branches == 2 {
			return 0
		}
		return 1
	}
	if branches == 2 {
		return 1
	}
	return 2
}

// Single is for languages without grammatical number (Japanese, Chinese,
// Korean, Thai, Vietnamese): every count uses branch 0.
var Single Rule = func(count, branches int) int {
	return 0
}

// Arabic implements the six-category Arabic cardinal rule, collapsed onto
// however many branches the message actually provides.
var Arabic Rule = func(count, branches int) int {
	abs := count
	if abs < 0 {
		abs = -abs
	}

	var category int
	switch {
	case count == 0:
		category = 0
	case abs == 1:
		category = 1
	case abs == 2:
		category = 2
	case abs%100 >= 3 && abs%100 <= 10:
		category = 3
	case abs%100 >= 11:
		category = 4
	default:
		category = 5
	}

	if category >= branches {
		return branches - 1
	}
	return category
}

// ForLocale returns the rule for a locale based on its base language,
// falling back to Default for unknown languages.
func ForLocale(locale string) Rule {
	lang := locale
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	lang = strings.ToLower(lang)

	switch lang {
	case "en", "de", "nl", "sv", "no", "da", "is":
		return English
	case "ru", "pl", "cs", "uk", "hr", "sr", "sk", "sl", "bg":
		return Slavic
	case "fr", "it", "pt", "es":
		return Romance
	case "ja", "zh", "ko", "th", "vi", "id", "ms":
		return Single
	case "ar":
		return Arabic
	default:
		return Default
	}
}
