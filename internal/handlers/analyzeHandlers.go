package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tubeideas/internal/apperrors"
	"tubeideas/internal/models"
	"tubeideas/internal/utils"
)

const (
	maxBodyBytes      = 1 << 20
	rateLimitMessage  = "API rate limit exceeded. Please try again later."
	internalErrorText = "Internal server error"
)

type Analyzer interface {
	CheckCredentials() error
	Analyze(ctx context.Context, channelURL, channelID string) (*models.AnalysisResult, error)
}

type AnalyzeHandler struct {
	analyzer Analyzer
	timeout  time.Duration
}

func NewAnalyzeHandler(analyzer Analyzer, timeout time.Duration) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, timeout: timeout}
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if err := h.analyzer.CheckCredentials(); err != nil {
		logger.Error().Err(err).Msg("Analyze called with missing credentials")
		status, msg := StatusFor(err)
		utils.SendJSONError(w, msg, status)
		return
	}

	var req models.AnalyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.analyzer.Analyze(ctx, req.ChannelURL, req.ChannelID)
	if err != nil {
		status, msg := StatusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("channel_url", req.ChannelURL).Msg("Error analyzing channel")
		} else {
			logger.Warn().Err(err).Str("channel_url", req.ChannelURL).Int("status", status).Msg("Channel analysis rejected")
		}
		utils.SendJSONError(w, msg, status)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// StatusFor maps a pipeline error to its HTTP status and client-facing message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrConfiguration):
		return http.StatusInternalServerError, strings.ReplaceAll(err.Error(), "\n", "; ")
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, rateLimitMessage
	default:
		return http.StatusInternalServerError, internalErrorText
	}
}
