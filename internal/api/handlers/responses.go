package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

type apiErrorResponse struct {
	Description string `json:"description"`
}

type countResponse struct {
	Count int `json:"count"`
}

type checkResponse struct {
	NewPosts    int       `json:"newPosts"`
	NewGuides   int       `json:"newGuides"`
	Subscribers int       `json:"subscribers"`
	LastChecked time.Time `json:"lastChecked"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(body)
}
