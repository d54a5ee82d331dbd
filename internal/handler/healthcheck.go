package handler

import "net/http"

// HandlePing answers the liveness probe.
//
// GET /healthcheck/ping — 200 {"detail": "pong!"}.
func HandlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Message{Detail: "pong!"})
}
