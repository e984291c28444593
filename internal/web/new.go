package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/logger"
	"github.com/nguyentantai21042004/video-summary/internal/processor"
)

//go:embed templates/*.html
var templateFS embed.FS

type implServer struct {
	cfg       config.ServerConfig
	processor processor.Processor
	logger    logger.Logger
	page      *template.Template
	router    http.Handler
}

// New creates the HTTP server around proc.
func New(cfg config.ServerConfig, proc processor.Processor, log logger.Logger) Server {
	s := &implServer{
		cfg:       cfg,
		processor: proc,
		logger:    log,
		page:      template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
	s.router = s.routes()
	return s
}
