// Package view holds the HTML templates rendered by the catalog handlers.
//
// Stored text is escaped once at validation time; templates call unescape
// before printing so html/template escapes it exactly once on output.
package view

import (
	"embed"
	"html"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var printer = message.NewPrinter(language.English)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"unescape": html.UnescapeString,
		"money": func(v float64) string {
			return decimal.NewFromFloat(v).StringFixed(2)
		},
		"number": func(n int64) string {
			return printer.Sprintf("%d", n)
		},
	}
}

// Load parses every embedded template. Each page is a named template
// ("category_list", "item_form", ...) ready for gin's c.HTML.
func Load() (*template.Template, error) {
	return template.New("catalog").Funcs(Funcs()).ParseFS(templateFS, "templates/*.gohtml")
}
