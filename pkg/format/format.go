// Package format renders numbers, currency amounts, percentages and
// timestamps with locale-specific conventions. It is the formatting
// capability the translation runtime delegates to; message text never
// flows through it.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Styles recognized in number format entries.
const (
	StyleDecimal  = "decimal"
	StyleCurrency = "currency"
	StylePercent  = "percent"
)

// Format holds the separator and symbol conventions for one locale.
// It is immutable after creation and safe for concurrent use.
type Format struct {
	decimalSeparator  string
	groupSeparator    string
	currencySymbol    string
	currencyPosition  string // "before" or "after"
	percentSymbol     string
	dateLayout        string
	timeLayout        string
	dateTimeLayout    string
}

// Option configures a Format during construction.
type Option func(*Format)

// New creates a Format. Without options it uses US English conventions.
func New(opts ...Option) *Format {
	f := &Format{
		decimalSeparator: ".",
		groupSeparator:   ",",
		currencySymbol:   "$",
		currencyPosition: "before",
		percentSymbol:    "%",
		dateLayout:       "01/02/2006",
		timeLayout:       "3:04 PM",
		dateTimeLayout:   "01/02/2006 3:04 PM",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithSeparators sets the decimal and grouping separators.
func WithSeparators(decimal, group string) Option {
	return func(f *Format) {
		if decimal != "" {
			f.decimalSeparator = decimal
		}
		if group != "" {
			f.groupSeparator = group
		}
	}
}

// WithCurrency sets the currency symbol and its position ("before"/"after").
func WithCurrency(symbol, position string) Option {
	return func(f *Format) {
		if symbol != "" {
			f.currencySymbol = symbol
		}
		if position == "before" || position == "after" {
			f.currencyPosition = position
		}
	}
}

// WithPercentSymbol sets the percent symbol.
func WithPercentSymbol(symbol string) Option {
	return func(f *Format) {
		if symbol != "" {
			f.percentSymbol = symbol
		}
	}
}

// WithDateLayouts sets the Go time layouts for dates, times and datetimes.
func WithDateLayouts(date, tm, datetime string) Option {
	return func(f *Format) {
		if date != "" {
			f.dateLayout = date
		}
		if tm != "" {
			f.timeLayout = tm
		}
		if datetime != "" {
			f.dateTimeLayout = datetime
		}
	}
}

// FromEntry builds a Format from a number-format resource entry, a flat map
// such as {"style":"currency","symbol":"€","position":"after","decimal":",",
// "group":"."}. Unknown keys are ignored; the style key is read by callers.
func FromEntry(entry map[string]any, base *Format) *Format {
	if base == nil {
		base = New()
	}
	f := *base

	if v, ok := str(entry, "decimal"); ok {
		f.decimalSeparator = v
	}
	if v, ok := str(entry, "group"); ok {
		f.groupSeparator = v
	}
	if v, ok := str(entry, "symbol"); ok {
		f.currencySymbol = v
	}
	if v, ok := str(entry, "position"); ok && (v == "before" || v == "after") {
		f.currencyPosition = v
	}
	if v, ok := str(entry, "percent"); ok {
		f.percentSymbol = v
	}
	return &f
}

func str(entry map[string]any, key string) (string, bool) {
	v, ok := entry[key].(string)
	return v, ok && v != ""
}

// Number formats a number with the locale's separators.
func (f *Format) Number(n float64) string {
	negative := n < 0
	if negative {
		n = -n
	}

	intPart := int64(n)
	frac := n - float64(intPart)

	result := f.groupInteger(intPart)
	if frac > 0 {
		frac = math.Round(frac*100) / 100
		decStr := strings.TrimRight(fmt.Sprintf("%.2f", frac)[2:], "0")
		if decStr != "" {
			result += f.decimalSeparator + decStr
		}
	}

	if negative {
		result = "-" + result
	}
	return result
}

// Currency formats an amount with two decimals and the currency symbol.
func (f *Format) Currency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	amount = math.Round(amount*100) / 100
	intPart := int64(amount)
	decStr := fmt.Sprintf("%.2f", amount-float64(intPart))[2:]
	numStr := f.groupInteger(intPart) + f.decimalSeparator + decStr

	var result string
	if f.currencyPosition == "before" {
		result = f.currencySymbol + numStr
	} else {
		result = numStr + " " + f.currencySymbol
	}

	if negative {
		result = "-" + result
	}
	return result
}

// Percent formats a decimal fraction as a percentage (0.5 -> "50%").
func (f *Format) Percent(n float64) string {
	pct := math.Round(n * 100 * 10) / 10

	negative := pct < 0
	if negative {
		pct = -pct
	}

	intPart := int64(pct)
	result := fmt.Sprintf("%d", intPart)
	if frac := pct - float64(intPart); frac > 0 {
		decStr := strings.TrimRight(fmt.Sprintf("%.1f", frac)[2:], "0")
		if decStr != "" {
			result += f.decimalSeparator + decStr
		}
	}

	if negative {
		result = "-" + result
	}
	return result + f.percentSymbol
}

// Date formats t with the locale's date layout.
func (f *Format) Date(t time.Time) string {
	return t.Format(f.dateLayout)
}

// Time formats t with the locale's time layout.
func (f *Format) Time(t time.Time) string {
	return t.Format(f.timeLayout)
}

// DateTime formats t with the locale's datetime layout.
func (f *Format) DateTime(t time.Time) string {
	return t.Format(f.dateTimeLayout)
}

func (f *Format) groupInteger(n int64) string {
	str := fmt.Sprintf("%d", n)
	if n < 1000 {
		return str
	}

	var parts []string
	for i := len(str); i > 0; i -= 3 {
		start := max(0, i-3)
		parts = append([]string{str[start:i]}, parts...)
	}
	return strings.Join(parts, f.groupSeparator)
}
