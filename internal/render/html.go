package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
)

var accentColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// sanitizeColor allows hex colors only so a stored accent value can
// never break out of the style attribute
func sanitizeColor(c string) string {
	if accentColorPattern.MatchString(c) {
		return c
	}
	return "#1f2937"
}

const documentHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #111; margin: 40px; }
  .doc { max-width: 760px; margin: 0 auto; }
  .head { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .head.impact { background: {{.Accent}}; color: #fff; padding: 24px; }
  .head.minimal { border-bottom: 1px solid #ddd; padding-bottom: 16px; }
  .head.modern { flex-direction: row-reverse; }
  h1 { margin: 0; font-size: 28px; color: {{.Accent}}; }
  .head.impact h1 { color: #fff; }
  .logo { max-height: 64px; }
  .meta { font-size: 13px; }
  .meta .label { color: #666; padding-right: 8px; }
  .parties { display: flex; gap: 48px; margin-bottom: 24px; font-size: 13px; }
  .parties h3 { margin: 0 0 6px; font-size: 12px; text-transform: uppercase; color: {{.Accent}}; }
  table.items { width: 100%; border-collapse: collapse; font-size: 13px; }
  table.items th { text-align: left; border-bottom: 2px solid {{.Accent}}; padding: 6px 8px; }
  table.items td { border-bottom: 1px solid #eee; padding: 6px 8px; }
  table.items th:not(:first-child), table.items td:not(:first-child) { text-align: right; }
  .totals { margin-top: 16px; margin-left: auto; width: 280px; font-size: 13px; }
  .totals td { padding: 4px 8px; }
  .totals td:last-child { text-align: right; }
  .totals tr:last-child td { border-top: 2px solid {{.Accent}}; font-weight: bold; }
  .notes { margin-top: 32px; font-size: 12px; color: #444; white-space: pre-wrap; }
</style>
</head>
<body>
<div class="doc">
  <div class="head {{.Layout}}">
    <div>
      {{if .LogoURL}}<img class="logo" src="{{.LogoURL}}" alt="">{{end}}
      <div><strong>{{.Shop.Name}}</strong></div>
      {{if .Shop.Address}}<div class="meta">{{.Shop.Address}}</div>{{end}}
      {{if .Shop.Phone}}<div class="meta">{{.Shop.Phone}}</div>{{end}}
      {{if .Shop.Email}}<div class="meta">{{.Shop.Email}}</div>{{end}}
    </div>
    <div>
      <h1>{{.Title}}</h1>
      <div class="meta"><span class="label">Number</span>{{.Number}}</div>
      {{range .Header}}<div class="meta"><span class="label">{{.Label}}</span>{{.Value}}</div>{{end}}
    </div>
  </div>

  <div class="parties">
    {{if .Customer}}
    <div>
      {{range .Customer}}<div>{{if .Label}}<span class="label">{{.Label}}:</span> {{end}}{{.Value}}</div>{{end}}
    </div>
    {{end}}
    {{if .Shipping}}
    <div>
      <h3>Ship To</h3>
      {{range .Shipping}}<div>{{.Value}}</div>{{end}}
    </div>
    {{end}}
  </div>

  <table class="items">
    <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
    {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
  </table>

  <table class="totals">
    {{range .TotalRows}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}
  </table>

  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
</div>
</body>
</html>`

type htmlView struct {
	Preview
	Accent template.CSS
}

// HTMLRenderer renders a preview tree to a self-contained HTML page
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tpl, err := template.New("document").Parse(documentHTML)
	if err != nil {
		return nil, fmt.Errorf("parse document template: %w", err)
	}
	return &HTMLRenderer{tpl: tpl}, nil
}

// Render produces the HTML page for a preview tree
func (r *HTMLRenderer) Render(p Preview) ([]byte, error) {
	view := htmlView{
		Preview: p,
		Accent:  template.CSS(sanitizeColor(p.AccentColor)),
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute document template: %w", err)
	}
	return buf.Bytes(), nil
}
