package ws

import "encoding/json"

// Event names carried on the wire, both directions.
const (
	eventTranscript   = "transcript"
	eventResetContext = "reset-context"
	eventLoadContext  = "load-context"

	eventGPTResponse  = "gpt-response"
	eventError        = "error"
	eventContextReset = "context-reset"
)

// envelope is the JSON frame wrapping every event.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type transcriptPayload struct {
	Final string `json:"final"`
	Model string `json:"model,omitempty"`
}

type gptResponsePayload struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type errorPayload struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

type contextResetPayload struct {
	Message string `json:"message"`
}
