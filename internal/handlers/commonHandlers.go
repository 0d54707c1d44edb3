package handlers

import (
	"net/http"

	"tubeideas/internal/config"
	"tubeideas/internal/utils"
)

type CommonHandler struct {
	cfg *config.Config
}

func NewCommonHandler(cfg *config.Config) *CommonHandler {
	return &CommonHandler{cfg: cfg}
}

type healthResponse struct {
	Status      string          `json:"status"`
	Credentials map[string]bool `json:"credentials"`
	News        string          `json:"news"`
	Discussions []string        `json:"discussions"`
}

// HealthHandler reports liveness and which upstreams are configured. Key values
// are never echoed.
func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Credentials: map[string]bool{
			"YOUTUBE_API_KEY":  h.cfg.YouTubeAPIKey != "",
			h.cfg.LLMKeyName(): h.cfg.LLMAPIKey != "",
			"NEWS_API_KEY":     h.cfg.NewsAPIKey != "",
		},
		News:        h.cfg.NewsBackend(),
		Discussions: []string{"reddit"},
	}
	if h.cfg.HackerNewsEnabled {
		resp.Discussions = append(resp.Discussions, "hackernews")
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}
