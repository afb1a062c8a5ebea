package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"mercator-hq/shipquote/pkg/shipping"
	"mercator-hq/shipquote/pkg/telemetry/logging"
)

// Quoter computes quotes. *shipping.Quoter implements it.
type Quoter interface {
	Quote(ctx context.Context, params shipping.Params) (*shipping.QuoteResult, error)
}

// CalculateResponse is the body of a successful POST /api/calculate.
type CalculateResponse struct {
	Success bool `json:"success"`
	*shipping.QuoteResult
}

// CalculateHandler serves POST /api/calculate.
type CalculateHandler struct {
	quoter     Quoter
	production bool
	logger     *slog.Logger
}

// NewCalculateHandler creates the quote handler. In production mode the
// details of internal errors are withheld from responses.
func NewCalculateHandler(quoter Quoter, production bool, logger *slog.Logger) *CalculateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculateHandler{
		quoter:     quoter,
		production: production,
		logger:     logger,
	}
}

// ServeHTTP decodes the request body, runs the quote and maps the outcome
// to a response: 200 with the quote, 400 for client errors and 500 for
// configuration or unexpected failures.
func (h *CalculateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := shipping.DecodeParams(r.Body)
	if err == nil {
		var result *shipping.QuoteResult
		result, err = h.quoter.Quote(ctx, params)
		if err == nil {
			ctx = logging.WithCalculationID(ctx, result.CalculationID)
			h.logger.InfoContext(ctx, "quote calculated",
				"destination", result.PackageSummary.Destination,
				"express", result.PackageSummary.ExpressShipping,
				"total_price", result.TotalPrice,
				"alerts", len(result.Alerts),
			)
			writeJSON(w, r, http.StatusOK, CalculateResponse{Success: true, QuoteResult: result})
			return
		}
	}

	status := shipping.StatusCode(err)
	if status < http.StatusInternalServerError {
		h.logger.DebugContext(ctx, "quote rejected",
			"outcome", shipping.Outcome(err),
			"error", err,
		)
		writeError(w, r, status, err.Error(), "")
		return
	}

	h.logger.ErrorContext(ctx, "quote failed",
		"outcome", shipping.Outcome(err),
		"error", err,
	)
	details := ""
	if !h.production {
		details = err.Error()
	}
	writeError(w, r, status, "Internal server error", details)
}
