package render

import (
	"fmt"
	"html/template"
	"io"

	log "github.com/sirupsen/logrus"
)

const page = `<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
<style>
body { font-family: sans-serif; margin: 1em; }
.row { display: flex; flex-wrap: wrap; }
.panel { margin: 0 1em 1em 0; }
footer { color: #7f7f7f; font-size: small; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Rows}}<div class="row">
{{range .}}<div class="panel" id="{{.ID}}"></div>
{{end}}</div>
{{end}}<footer>{{.Footer}} <time datetime="{{.Timestamp}}">{{.Generated}}</time></footer>
<script>
{{range .Rows}}{{range .}}vegaEmbed({{.Selector}}, {{.Spec}}, {actions: false});
{{end}}{{end}}</script>
</body>
</html>
`

var pageTemplate = template.Must(template.New("dashboard").Parse(page))

type htmlPanel struct {
	ID       string
	Selector string
	Spec     map[string]interface{}
}

type htmlPage struct {
	Title     string
	Language  string
	Footer    string
	Timestamp string
	Generated string
	Rows      [][]htmlPanel
}

// WriteHTML writes the dashboard as a standalone html document, each chart
// embedded as a vega-lite specification.
func WriteHTML(w io.Writer, d Dashboard) error {
	if d.Panels() == 0 {
		return ErrEmptyDashboard
	}

	language := d.Language
	if language == "" {
		language = "en"
	}

	p := htmlPage{
		Title:     d.Title,
		Language:  language,
		Footer:    d.Footer,
		Timestamp: d.Generated.UTC().Format("2006-01-02T15:04:05Z"),
		Generated: d.Generated.UTC().Format("2006-01-02 15:04 MST"),
		Rows:      make([][]htmlPanel, 0, len(d.Rows)),
	}

	for i, row := range d.Rows {
		panels := make([]htmlPanel, 0, len(row))
		for j, s := range row {
			id := fmt.Sprintf("panel-%d-%d", i, j)
			panels = append(panels, htmlPanel{
				ID:       id,
				Selector: "#" + id,
				Spec:     VegaLite(s),
			})
		}
		p.Rows = append(p.Rows, panels)
	}

	if err := pageTemplate.Execute(w, p); nil != err {
		return err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"panels": d.Panels(),
	}).Debug("write html")

	return nil
}
