package formatter

import (
	"fmt"

	"github.com/fatih/color"
)

// StatusStyle pairs a status value's display text with its color
type StatusStyle struct {
	Text  string
	Color color.Attribute
}

// Status maps per domain. A status missing from every map renders as-is,
// uncolored.
var (
	BookingStatusMap = map[string]StatusStyle{
		"active":     {Text: "Active", Color: color.FgGreen},
		"uncomplete": {Text: "Uncomplete", Color: color.FgYellow},
		"pending":    {Text: "Pending", Color: color.FgYellow},
		"confirmed":  {Text: "Confirmed", Color: color.FgGreen},
		"cancelled":  {Text: "Cancelled", Color: color.FgRed},
		"completed":  {Text: "Completed", Color: color.FgBlue},
	}

	PaymentStatusMap = map[string]StatusStyle{
		"unpaid":   {Text: "Unpaid", Color: color.FgYellow},
		"partial":  {Text: "Partial", Color: color.FgBlue},
		"paid":     {Text: "Paid", Color: color.FgGreen},
		"refunded": {Text: "Refunded", Color: color.FgMagenta},
	}

	LessonStatusMap = map[string]StatusStyle{
		"created":   {Text: "Created", Color: color.FgYellow},
		"planned":   {Text: "Planned", Color: color.FgYellow},
		"confirmed": {Text: "Confirmed", Color: color.FgBlue},
		"rest":      {Text: "Rest", Color: color.FgCyan},
		"delegated": {Text: "Delegated", Color: color.FgMagenta},
		"cancelled": {Text: "Cancelled", Color: color.FgRed},
		"completed": {Text: "Completed", Color: color.FgGreen},
	}
)

// FormatStatus renders a status value with its mapped text, colored when
// color output is enabled
func (f *Formatter) FormatStatus(value any) string {
	status := fmt.Sprint(value)

	style, ok := lookupStatus(status)
	if !ok {
		return status
	}

	if !f.color {
		return style.Text
	}

	return color.New(style.Color).Sprint(style.Text)
}

func lookupStatus(status string) (StatusStyle, bool) {
	for _, m := range []map[string]StatusStyle{LessonStatusMap, BookingStatusMap, PaymentStatusMap} {
		if style, ok := m[status]; ok {
			return style, true
		}
	}

	return StatusStyle{}, false
}
