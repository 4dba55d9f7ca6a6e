package server

import (
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Title}}{{.Title}}{{else}}法規顯示{{end}}</title>
</head>
<body>
{{- if .Error}}
<div id="error" style="white-space: pre-line; color: #d32f2f; background-color: #ffebee; border: 1px solid #f8bbd9; padding: 10px; border-radius: 4px; margin: 10px;">{{.Error}}</div>
{{- else}}
<div id="content">
<div style="color: #666; font-size: 0.9em; margin-bottom: 10px; font-family: Arial, sans-serif;">Regulation ID: {{.RawID}}</div>
<div>{{.Body}}</div>
</div>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Title string
	RawID string
	Body  string
	Error string
}

func writePage(w http.ResponseWriter, code int, d pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	err := pageTemplate.Execute(w, struct {
		pageData
		Body template.HTML
	}{d, template.HTML(d.Body)}) // rendered output is already escaped
	if err != nil {
		log.Error("write page", "err", err)
	}
}

func writeErrorPage(w http.ResponseWriter, code int, message string) {
	writePage(w, code, pageData{Error: message})
}
