package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tablerail/tablerail/internal/config"
	"github.com/tablerail/tablerail/internal/registry"
)

// NotAvailable is rendered for any value that is absent or cannot be
// formatted as its declared kind
const NotAvailable = "N/A"

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// dateLayouts are tried in order when a date arrives as a string
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Formatter renders row values for display according to their field kind
type Formatter struct {
	currency string
	color    bool
	printer  *message.Printer
}

// New creates a formatter from the output configuration
func New(cfg config.OutputConfig) *Formatter {
	return &Formatter{
		currency: cfg.Currency,
		color:    cfg.Color,
		printer:  message.NewPrinter(language.English),
	}
}

// FormatCell renders one value according to its kind. Every kind is handled;
// a value that does not fit its kind degrades to N/A rather than erroring.
func (f *Formatter) FormatCell(value any, kind registry.FieldKind) string {
	if value == nil {
		return NotAvailable
	}

	switch kind {
	case registry.KindDate:
		return f.FormatDate(value)
	case registry.KindCurrency:
		return f.FormatCurrency(value)
	case registry.KindDuration:
		return f.FormatDuration(value, false)
	case registry.KindBool:
		return f.FormatBool(value)
	case registry.KindArray:
		return f.FormatArray(value)
	case registry.KindStatus:
		return f.FormatStatus(value)
	default:
		return fmt.Sprint(value)
	}
}

/// FormatDate renders a timestamp as "20-May : 14:30"
func (f *Formatter) FormatDate(value any) string {
	t, ok := parseTime(value)
	if !ok {
		return NotAvailable
	}

	return fmt.Sprintf("%d-%s : %02d:%02d", t.Day(), t.Month().String()[:3], t.Hour(), t.Minute())
}

// FormatCurrency renders an amount with the configured currency symbol and
// grouped thousands, like "€1,250.00"
func (f *Formatter) FormatCurrency(value any) string {
	amount, ok := toNumber(value)
	if !ok {
		return NotAvailable
	}

	symbol, ok := currencySymbols[f.currency]
	if !ok {
		symbol = f.currency + " "
	}

	return symbol + f.printer.Sprintf("%.2f", amount)
}

// FormatDuration renders minutes as "2h 30m", or "2 hours 30 minutes" in
// verbose form
func (f *Formatter) FormatDuration(value any, verbose bool) string {
	minutes, ok := toNumber(value)
	if !ok {
		return NotAvailable
	}

	total := int(minutes)
	hours := total / 60
	mins := total % 60

	if !verbose {
		switch {
		case hours == 0:
			return fmt.Sprintf("%dm", mins)
		case mins == 0:
			return fmt.Sprintf("%dh", hours)
		default:
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
	}

	switch {
	case hours == 0:
		return plural(mins, "minute")
	case mins == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(mins, "minute")
	}
}

// FormatBool renders a boolean as Yes or No
func (f *Formatter) FormatBool(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "Yes"
		}

		return "No"
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return f.FormatBool(b)
		}
	}

	return NotAvailable
}

// FormatArray renders a multi-valued field as a comma-separated list
func (f *Formatter) FormatArray(value any) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}

		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(value)
	}
}

func parseTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n, true
		}
	}

	return 0, false
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}
