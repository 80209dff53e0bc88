package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders HTML documents from business data.
// It uses Go's html/template package with custom formatting functions.
type TemplateEngine struct {
	funcMap template.FuncMap
	tmpl    *template.Template
}

// NewTemplateEngine creates a new template engine with the document template parsed
func NewTemplateEngine() (*TemplateEngine, error) {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		// Number formatting
		"formatQty":    formatQty,
		"formatAmount": formatAmount,

		// Date formatting
		"formatDate": formatDate,

		// String utilities
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": titleCase,
		"trim":  strings.TrimSpace,
	}

	tmpl, err := template.New("document").Funcs(e.funcMap).Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document template: %w", err)
	}
	e.tmpl = tmpl

	return e, nil
}

// RenderDocument renders the document template with the given data.
// The output depends only on the data, so the same document always
// produces the same HTML.
func (e *TemplateEngine) RenderDocument(data *DocumentData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("document data is nil")
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

// formatQty formats a quantity with 3 decimal places
func formatQty(d decimal.Decimal) string {
	return d.StringFixed(3)
}

// formatAmount formats a monetary amount with 4 decimal places
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(4)
}

// formatDate formats a date as YYYY-MM-DD; zero times render empty
func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}
