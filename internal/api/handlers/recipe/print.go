package recipe

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// PrintTemplate 列印頁面的模板，由 router 透過 SetHTMLTemplate 註冊
func PrintTemplate() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
