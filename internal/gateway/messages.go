package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/safespace-sl/safespace/internal/counselor"
)

// messageRequest is the POST /v1/messages body.
type messageRequest struct {
	Message string            `json:"message"`
	UserID  string            `json:"user_id"`
	Context counselor.Context `json:"context"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// handleMessage runs one message through the counselor and returns the
// reply as JSON.
func (g *Gateway) handleMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		r.Body = http.MaxBytesReader(w, r.Body, g.config.MaxBodyBytes)

		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			g.metrics.errors.Inc()
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			g.metrics.errors.Inc()
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		if strings.TrimSpace(req.UserID) == "" {
			g.metrics.errors.Inc()
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}

		reply, err := g.processor.ProcessMessage(r.Context(), req.Message, req.UserID, req.Context)
		if err != nil {
			g.metrics.errors.Inc()
			g.logger.Error("message processing failed",
				"user_id", req.UserID,
				"error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		g.metrics.messages.Inc()
		g.metrics.latency.Observe(time.Since(start).Seconds())
		if reply.IsEmergency {
			g.metrics.emergencies.Inc()
		}
		if reply.RequiresFollowup {
			g.metrics.followups.Inc()
		}

		g.logger.Info("message processed",
			"user_id", req.UserID,
			"emergency", reply.IsEmergency,
			"duration_ms", time.Since(start).Milliseconds())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
