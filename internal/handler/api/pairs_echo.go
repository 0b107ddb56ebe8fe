package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	models "PairSignal/internal/domain/models"
	domrepo "PairSignal/internal/domain/repository"
	"PairSignal/internal/services/pairs"
	"PairSignal/internal/usecase"
	xhttp "PairSignal/pkg/http"
	xlogger "PairSignal/pkg/logger"
	"PairSignal/pkg/util"
)

// Analyzer runs one pair analysis.
type Analyzer interface {
	Analyze(ctx context.Context, p usecase.AnalyzeParams) (*models.Report, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// PairsEchoHandler serves pair signals over Echo.
type PairsEchoHandler struct {
	logger   *xlogger.Logger
	analyzer Analyzer
	workers  int
	checks   map[string]HealthCheck
	mw       []echo.MiddlewareFunc
}

func NewPairsEchoHandler(logger *xlogger.Logger, analyzer Analyzer, workers int) *PairsEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PairsEchoHandler{logger: logger, analyzer: analyzer, workers: workers, checks: map[string]HealthCheck{}}
}

// AddHealthCheck registers a dependency probed by /healthz.
func (h *PairsEchoHandler) AddHealthCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

// Use adds middleware applied to the /api/pairs routes only.
func (h *PairsEchoHandler) Use(mw ...echo.MiddlewareFunc) {
	h.mw = append(h.mw, mw...)
}

func (h *PairsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api/pairs", h.mw...)
	g.GET("/signals", h.Signals)
}

func (h *PairsEchoHandler) Signals(c echo.Context) error {
	req := &models.PairSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	params := usecase.AnalyzeParams{
		SymbolA:   req.SymbolA,
		SymbolB:   req.SymbolB,
		Timeframe: domrepo.NormalizeTimeframe(req.TF),
		N:         req.N,
		Config: pairs.Config{
			Window:              req.Window,
			RegressionThreshold: req.RegressionThreshold,
			DistanceThreshold:   req.DistanceThreshold,
			Horizon:             req.Horizon,
			Workers:             h.workers,
		},
		NoCache: req.NoCache,
	}
	if req.From != "" || req.To != "" {
		from, okFrom := util.ParseTime(req.From)
		to, okTo := util.ParseTime(req.To)
		if !okFrom || !okTo {
			return xhttp.ErrorResponse(c, xhttp.BadRequestError("from and to must both be valid times").
				OnField("from").
				WithParam("formats", []string{"rfc3339", "unix"}))
		}
		params.From, params.To = from, to
	}

	report, err := h.analyzer.Analyze(c.Request().Context(), params)
	if err != nil {
		appErr := toAppError(err)
		if appErr.Status >= http.StatusInternalServerError {
			h.logger.Error("pairs signals usecase error",
				xlogger.String("symbol_a", req.SymbolA),
				xlogger.String("symbol_b", req.SymbolB),
				xlogger.Error(err),
			)
		}
		return xhttp.ErrorResponse(c, appErr)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, models.NewPairSignalsResponse(report, req.Series))
}

const (
	codeValidation = "ERR_VALIDATION"
	codeAlignment  = "ERR_ALIGNMENT"
)

// toAppError maps pipeline errors onto HTTP statuses: bad input and unalignable data are the caller's problem.
func toAppError(err error) *xhttp.AppError {
	var (
		ve *pairs.ValidationError
		ae *pairs.AlignmentError
	)
	switch {
	case errors.As(err, &ve):
		return xhttp.NewAppError(codeValidation, ve.Reason, http.StatusBadRequest).OnField(ve.Field).WithError(err)
	case errors.As(err, &ae):
		return xhttp.NewAppError(codeAlignment, ae.Reason, http.StatusBadRequest).WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return xhttp.TimeoutError("analysis timed out").WithError(err)
	default:
		return xhttp.InternalError("analysis failed").WithError(err)
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *PairsEchoHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Status: "ok", Checks: map[string]string{}}
	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			res.Checks[name] = err.Error()
			res.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		res.Checks[name] = "ok"
	}
	return c.JSON(status, res)
}
