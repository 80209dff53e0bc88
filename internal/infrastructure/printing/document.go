package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLine is a single priced line of a printable document
type DocumentLine struct {
	Position    int
	Description string
	Qty         decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// DocumentData is the model rendered by the document template.
// Quotes and purchase orders share the same layout; only the labels differ.
type DocumentData struct {
	// DocType is the heading, e.g. "Quote" or "Purchase Order"
	DocType string
	Number  string
	Status  string
	// PartyLabel is the label for the counterparty, e.g. "Customer" or "Supplier"
	PartyLabel string
	PartyName  string
	Currency   string
	IssuedAt   *time.Time
	// DueDate is the quote validity date or the purchase order expected date
	DueDate      *time.Time
	DueDateLabel string
	Notes        string
	Lines        []DocumentLine
	Total        decimal.Decimal
}

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.DocType}} {{.Number}}</title>
<style>
  body { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; color: #1a1a1a; font-size: 12px; }
  h1 { font-size: 20px; margin-bottom: 2px; }
  .meta { color: #555; margin-bottom: 16px; }
  .meta div { margin: 2px 0; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th { text-align: left; border-bottom: 2px solid #1a1a1a; padding: 6px 8px; font-size: 11px; text-transform: uppercase; }
  td { border-bottom: 1px solid #ddd; padding: 6px 8px; }
  th.num, td.num { text-align: right; }
  tr.total td { border-bottom: none; border-top: 2px solid #1a1a1a; font-weight: bold; }
  .notes { margin-top: 20px; }
  .notes h2 { font-size: 13px; margin-bottom: 4px; }
  .notes p { white-space: pre-wrap; margin: 0; }
</style>
</head>
<body>
<h1>{{.DocType}} {{.Number}}</h1>
<div class="meta">
  <div>{{.PartyLabel}}: {{.PartyName}}</div>
  {{- if .IssuedAt}}
  <div>Date: {{formatDate .IssuedAt}}</div>
  {{- end}}
  {{- if .DueDate}}
  <div>{{.DueDateLabel}}: {{formatDate .DueDate}}</div>
  {{- end}}
  <div>Status: {{title .Status}}</div>
</div>
<table>
  <thead>
    <tr>
      <th>#</th>
      <th>Description</th>
      <th class="num">Qty</th>
      <th>Unit</th>
      <th class="num">Unit Price</th>
      <th class="num">Line Total</th>
    </tr>
  </thead>
  <tbody>
    {{- range .Lines}}
    <tr>
      <td>{{.Position}}</td>
      <td>{{.Description}}</td>
      <td class="num">{{formatQty .Qty}}</td>
      <td>{{.Unit}}</td>
      <td class="num">{{formatAmount .UnitPrice}}</td>
      <td class="num">{{formatAmount .Total}}</td>
    </tr>
    {{- end}}
    <tr class="total">
      <td colspan="5">Total ({{.Currency}})</td>
      <td class="num">{{formatAmount .Total}}</td>
    </tr>
  </tbody>
</table>
{{- if .Notes}}
<div class="notes">
  <h2>Notes</h2>
  <p>{{.Notes}}</p>
</div>
{{- end}}
</body>
</html>
`
