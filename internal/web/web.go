package web

import (
	"embed"
	"html/template"

	"github.com/noah-isme/codereg/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LayoutTemplate is the entry template rendering a whole page.
const LayoutTemplate = "layout.html"

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templatesFS, "templates/*.html")
}

// FuncMap holds the helpers available to page templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"bannerClass": bannerClass,
		"inc":         func(i int) int { return i + 1 },
	}
}

func bannerClass(kind models.NotificationKind) string {
	switch kind {
	case models.NotificationSuccess:
		return "banner banner-success"
	case models.NotificationInfo:
		return "banner banner-info"
	case models.NotificationWarning:
		return "banner banner-warning"
	default:
		return "banner banner-error"
	}
}
