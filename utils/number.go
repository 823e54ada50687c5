package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCount - count with grouped digits in the convention of lang,
// e.g. 12,345
func FormatCount(lang language.Tag, n float64) string {
	return message.NewPrinter(lang).Sprintf("%d", int64(n))
}
