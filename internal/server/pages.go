package server

import "html/template"

type documentPage struct {
	Title string
	Lang  string
	Path  string
	Meta  map[string]string
	Body  template.HTML
	TOC   template.HTML
}

var pages = template.Must(template.New("pages").Parse(`
{{define "head"}}<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{range $k, $v := .Meta}}<meta name="{{$k}}" content="{{$v}}">
{{end}}</head>
<body>
{{end}}

{{define "document"}}{{template "head" .}}{{if .TOC}}<nav class="toc">
{{.TOC}}</nav>
{{end}}<main data-path="{{.Path}}">
{{.Body}}</main>
</body>
</html>
{{end}}

{{define "notfound"}}{{template "head" .}}<main>
<h1>Page not found</h1>
<p>The requested document does not exist. <a href="/docs">Back to the documentation</a>.</p>
</main>
</body>
</html>
{{end}}
`))
