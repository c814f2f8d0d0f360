package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorInfo struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
	ReturnTo string `json:"return_to,omitempty"`
}

type errorBody struct {
	Error ErrorInfo `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, info ErrorInfo) {
	WriteJSON(w, status, errorBody{Error: info})
}
