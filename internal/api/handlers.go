package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sentimentform/internal/analysis"
	"sentimentform/internal/domain"
	apperrors "sentimentform/internal/errors"
	"sentimentform/internal/logging"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	recentOnPage     = 10
	msgFailed        = "Sentiment analysis failed. Please try again."
)

// ResultView is what the result panel renders. Kind selects the style:
// warning, error or success.
type ResultView struct {
	Kind    string
	Message string
	Label   string
	Score   string
}

type pageData struct {
	Text    string
	Result  *ResultView
	History bool
	Recent  []domain.Analysis
}

type analyzeRequest struct {
	Text string `json:"text" form:"text"`
}

type analyzeResponse struct {
	Status     analysis.Status `json:"status"`
	Message    string          `json:"message"`
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Score      float64         `json:"score"`
	Confidence string          `json:"confidence"`
}

func (s *Server) index(c echo.Context) error {
	return s.renderPage(c, http.StatusOK, pageData{})
}

// analyzeForm handles the form post. htmx requests get only the result panel,
// plain form posts get the whole page back.
func (s *Server) analyzeForm(c echo.Context) error {
	text := c.FormValue("text")
	partial := c.Request().Header.Get("HX-Request") == "true"

	view, status := s.analyzeToView(c, text)

	if partial {
		return s.render(c, http.StatusOK, "result", view)
	}
	return s.renderPage(c, status, pageData{Text: text, Result: view})
}

func (s *Server) analyzeToView(c echo.Context, text string) (*ResultView, int) {
	out, err := s.analyzer.Analyze(c.Request().Context(), text)
	if err != nil {
		structured := apperrors.AsStructuredError(err)
		logging.WithError(err).Error("analysis failed")
		return &ResultView{Kind: "error", Message: msgFailed}, structured.HTTPStatus()
	}

	switch out.Status {
	case analysis.StatusEmpty:
		return &ResultView{Kind: "warning", Message: out.Message}, http.StatusOK
	case analysis.StatusInvalid:
		return &ResultView{Kind: "error", Message: out.Message}, http.StatusUnprocessableEntity
	default:
		return &ResultView{
			Kind:    "success",
			Message: out.Message,
			Label:   out.Analysis.Sentiment.Label,
			Score:   analysis.FormatScore(out.Analysis.Sentiment.Score),
		}, http.StatusOK
	}
}

func (s *Server) renderPage(c echo.Context, status int, data pageData) error {
	if s.analyzer.HistoryEnabled() {
		data.History = true
		recent, err := s.analyzer.Recent(c.Request().Context(), recentOnPage)
		if err != nil {
			logging.WithError(err).Warn("failed to load recent analyses")
		}
		data.Recent = recent
	}
	return s.render(c, status, "index.html", data)
}

func (s *Server) analyzeJSON(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("request body must be JSON with a text field")
	}

	out, err := s.analyzer.Analyze(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}

	if out.Status != analysis.StatusDone {
		return apperrors.UnprocessableError(out.Message).WithContext("status", out.Status)
	}

	return c.JSON(http.StatusOK, analyzeResponse{
		Status:     out.Status,
		Message:    out.Message,
		ID:         out.Analysis.ID,
		Label:      out.Analysis.Sentiment.Label,
		Score:      out.Analysis.Sentiment.Score,
		Confidence: analysis.FormatScore(out.Analysis.Sentiment.Score),
	})
}

func (s *Server) getAnalyses(c echo.Context) error {
	if !s.analyzer.HistoryEnabled() {
		return apperrors.NotFoundError("analysis history is disabled")
	}

	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return apperrors.ValidationError("limit must be a positive integer").WithContext("limit", raw)
		}
		limit = min(n, maxListLimit)
	}

	analyses, err := s.analyzer.Recent(c.Request().Context(), limit)
	if err != nil {
		return apperrors.InternalError("failed to load analyses", err)
	}
	if analyses == nil {
		analyses = []domain.Analysis{}
	}
	return c.JSON(http.StatusOK, analyses)
}

func (s *Server) getAnalysis(c echo.Context) error {
	id := c.Param("id")
	a, err := s.analyzer.Find(c.Request().Context(), id)
	if err != nil {
		return apperrors.InternalError("failed to load analysis", err)
	}
	if a == nil {
		return apperrors.NotFoundError("analysis not found").WithContext("id", id)
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
