package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// detailResponse is the {"detail": "..."} payload shape used for every
// non-entity response; the browser dashboard surfaces the field verbatim.
type detailResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, detailResponse{Detail: detail})
}
