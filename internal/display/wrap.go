package display

import (
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultWidth = 80

var printer = message.NewPrinter(language.English)

// Wrap word-wraps each line of text to DefaultWidth.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Gold renders an amount with thousands separators.
func Gold(amount int64) string {
	return printer.Sprintf("%d", amount)
}
