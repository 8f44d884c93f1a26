package api

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentimentform/internal/analysis"
	"sentimentform/internal/domain"
	apperrors "sentimentform/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Analyzer is the request-facing surface of *analysis.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*analysis.Outcome, error)
	Recent(ctx context.Context, limit int) ([]domain.Analysis, error)
	Find(ctx context.Context, id string) (*domain.Analysis, error)
	HistoryEnabled() bool
}

type Server struct {
	echo      *echo.Echo
	analyzer  Analyzer
	templates *template.Template
}

type Options struct {
	// MaxBody is an echo body limit such as "64K"; empty disables the limit.
	MaxBody string
}

func NewServer(a Analyzer, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig()))
	if opts.MaxBody != "" {
		e.Use(middleware.BodyLimit(opts.MaxBody))
	}
	e.Use(apperrors.Middleware())

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"score": analysis.FormatScore,
	}).ParseFS(templateFS, "templates/*.html"))

	s := &Server{
		echo:      e,
		analyzer:  a,
		templates: tmpl,
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.index)
	s.echo.POST("/analyze", s.analyzeForm)
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.POST("/api/analyze", s.analyzeJSON)
	s.echo.GET("/api/analyses", s.getAnalyses)
	s.echo.GET("/api/analyses/:id", s.getAnalysis)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets tests drive the full middleware stack.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) render(c echo.Context, status int, name string, data any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return s.templates.ExecuteTemplate(c.Response(), name, data)
}
