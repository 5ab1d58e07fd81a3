package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/couchcryptid/parksafe-la/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var hours = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

type pageData struct {
	Days   []string
	Hours  []int
	Form   formFields
	Error  string
	Result *domain.Prediction
}

func newPageData(f formFields) pageData {
	return pageData{Days: domain.DaysOfWeek, Hours: hours, Form: f}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}
