package rest

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed web/index.html
var webFS embed.FS

type pageData struct {
	SocketPort string
}

type pageHandler struct {
	logger   *slog.Logger
	template *template.Template
	data     pageData
}

func newPageHandler(logger *slog.Logger, socketPort string) (*pageHandler, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &pageHandler{
		logger:   logger.With("component", "page"),
		template: tmpl,
		data:     pageData{SocketPort: socketPort},
	}, nil
}

func (that *pageHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := that.template.Execute(&buf, that.data); err != nil {
		that.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		that.logger.Error("failed to write page", "error", err)
	}
}
