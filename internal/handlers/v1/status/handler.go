package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/finance-tracker/internal/logging"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Bot      string `json:"bot"`
	WebApp   string `json:"webapp"`
	Database string `json:"database"`
}

type Handler struct {
	DB         pinger
	BotEnabled bool
	WebAppDir  string
}

func NewHandler(db pinger, botEnabled bool, webAppDir string) Handler {
	return Handler{DB: db, BotEnabled: botEnabled, WebAppDir: webAppDir}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

// Health reports the state of the bot, the webapp bundle and the database.
func (h *Handler) Health(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("health: method not GET")
	}

	resp := HealthResponse{Status: "ok", Bot: "disabled", WebApp: "missing", Database: "ok"}
	if h.BotEnabled {
		resp.Bot = "running"
	}
	if webAppAvailable(h.WebAppDir) {
		resp.WebApp = "available"
	}

	code := http.StatusOK
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()
	stopTimer := logData.AddTiming("pingMs")
	err := h.DB.Ping(ctx)
	stopTimer()
	if err != nil {
		resp.Status, resp.Database = "degraded", "unavailable"
		code = http.StatusServiceUnavailable
		logData.AddData("pingError", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(resp)
}
