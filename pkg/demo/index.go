package demo

import (
	"html/template"
	"io"
	"strings"
)

// Card is one chart on the gallery index page.
type Card struct {
	Kind string
	Name string
	Tags []string
	Src  string // image URL of the chart
}

// Cards turns gallery entries into index cards. src maps an entry to the
// URL its chart is served from.
func Cards(entries []Entry, src func(Entry) string) []Card {
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, Card{Kind: string(e.Kind), Name: e.Name, Tags: e.Tags, Src: src(e)})
	}
	return cards
}

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2rem; color: #0f172a; background: #f8fafc; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(320px, 1fr)); gap: 1.5rem; }
.card { background: #fff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 1rem; }
.card h2 { font-size: 1rem; margin: 0 0 .5rem; }
.tag { display: inline-block; font-size: .75rem; color: #475569; background: #f1f5f9; border-radius: 4px; padding: 0 .4rem; margin-right: .25rem; }
.card img { display: block; width: 100%; margin-top: .75rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="grid">
{{- range .Cards}}
<div class="card" id="{{.Kind}}" data-tags="{{join .Tags ","}}">
<h2>{{.Name}}</h2>
{{- range .Tags}}<span class="tag">{{.}}</span>{{end}}
<img src="{{.Src}}" alt="{{.Name}}">
</div>
{{- end}}
</div>
</body>
</html>
`))

// WriteIndex writes the gallery index page.
func WriteIndex(w io.Writer, title string, cards []Card) error {
	return indexTemplate.Execute(w, struct {
		Title string
		Cards []Card
	}{title, cards})
}
