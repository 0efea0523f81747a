package cmd

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var nairaPrinter = message.NewPrinter(language.English)

// formatNaira renders a whole-naira amount with digit grouping (₦6,000).
func formatNaira(amount int64) string {
	return nairaPrinter.Sprintf("₦%d", amount)
}

// formatDate renders a server timestamp for transaction listings.
func formatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}
