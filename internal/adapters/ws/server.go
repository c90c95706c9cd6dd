package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/voxhub/voicerelay/internal/app/session"
	"github.com/voxhub/voicerelay/internal/domain"
	"github.com/voxhub/voicerelay/internal/observability"
)

type Server struct {
	svc      *session.Service
	upgrader websocket.Upgrader
}

// NewServer builds the HTTP handler: the websocket endpoint on /ws, a
// health probe, and (optionally) the static UI bundle on /.
func NewServer(svc *session.Service, staticDir string) http.Handler {
	s := &Server{
		svc: svc,
		upgrader: websocket.Upgrader{
			// Clients connect from the statically served UI or from
			// native apps; there is no auth in front of this endpoint.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", handleHealthz)
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	return withLogging(mux)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleWS upgrades the connection and runs its read loop. Events are
// handled strictly in arrival order: the provider call happens inline, so a
// connection's next event waits for the pending generation. The read loop
// is also the sole writer on the socket.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		observability.Logger().Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// A client-supplied session id lets a quick reconnect resume its
	// context before the delayed eviction fires.
	connID := domain.ConnectionID(r.URL.Query().Get("session"))
	if connID == "" {
		connID = domain.ConnectionID(uuid.NewString())
	}

	ctx := observability.WithConnectionID(r.Context(), string(connID))
	log := observability.LoggerFromContext(ctx)
	log.Info("client connected", "remote", r.RemoteAddr)

	defer s.svc.HandleDisconnect(ctx, connID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("client disconnected", "error", err)
			return
		}
		s.dispatch(ctx, conn, connID, data)
	}
}

func (s *Server) dispatch(ctx context.Context, conn *websocket.Conn, connID domain.ConnectionID, data []byte) {
	log := observability.LoggerFromContext(ctx)

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn("malformed frame", "error", err)
		writeEvent(conn, eventError, errorPayload{
			Message: "Could not parse the message.",
			Details: "malformed_frame",
		})
		return
	}

	switch env.Event {
	case eventTranscript:
		s.handleTranscript(ctx, conn, connID, env.Data)

	case eventResetContext:
		s.svc.ResetContext(ctx, connID)
		writeEvent(conn, eventContextReset, contextResetPayload{
			Message: "Conversation context has been reset.",
		})

	case eventLoadContext:
		s.handleLoadContext(ctx, conn, connID, env.Data)

	default:
		log.Warn("unknown event", "event", env.Event)
		writeEvent(conn, eventError, errorPayload{
			Message: "Unknown event.",
			Details: "unknown_event",
		})
	}
}

func (s *Server) handleTranscript(ctx context.Context, conn *websocket.Conn, connID domain.ConnectionID, data []byte) {
	var payload transcriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		writeEvent(conn, eventError, errorPayload{
			Message: "Could not parse the transcript.",
			Details: "malformed_frame",
		})
		return
	}

	reply, err := s.svc.HandleTranscript(ctx, connID, payload.Final, payload.Model)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTranscript) {
			// Silence from the speech recognizer; nothing to answer.
			return
		}
		writeEvent(conn, eventError, sanitizeError(err))
		return
	}

	writeEvent(conn, eventGPTResponse, gptResponsePayload{
		Text:  reply.Text,
		Model: string(reply.Model),
	})
}

func (s *Server) handleLoadContext(ctx context.Context, conn *websocket.Conn, connID domain.ConnectionID, data []byte) {
	var prefs map[string]any
	if err := json.Unmarshal(data, &prefs); err != nil || prefs == nil {
		writeEvent(conn, eventError, errorPayload{
			Message: "load-context expects an object.",
			Details: "invalid_context_payload",
		})
		return
	}

	if err := s.svc.LoadContext(ctx, connID, prefs); err != nil {
		writeEvent(conn, eventError, sanitizeError(err))
	}
}

func writeEvent(conn *websocket.Conn, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		observability.Logger().Error("marshal event payload", "event", event, "error", err)
		return
	}
	if err := conn.WriteJSON(envelope{Event: event, Data: data}); err != nil {
		observability.Logger().Warn("write event", "event", event, "error", err)
	}
}
