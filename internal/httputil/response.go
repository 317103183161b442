package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Status      string      `json:"status"`
	Code        int         `json:"code"`
	Description string      `json:"description"`
	Data        interface{} `json:"data"`
}

// RespondOK writes a success envelope. It marshals before writing
// headers so an encoding failure cannot produce a half-sent response.
func RespondOK(w http.ResponseWriter, code int, description string, data interface{}) {
	respond(w, Envelope{
		Status:      "OK",
		Code:        code,
		Description: description,
		Data:        data,
	})
}

// RespondKO writes a failure envelope with a null data payload.
func RespondKO(w http.ResponseWriter, code int, description string) {
	respond(w, Envelope{
		Status:      "KO",
		Code:        code,
		Description: description,
		Data:        nil,
	})
}

func respond(w http.ResponseWriter, env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Code)
	w.Write(payload)
}
