package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"quiz-builder/internal/app"
	"quiz-builder/internal/domain"
)

type WSHandler struct {
	session  *app.Session
	upgrader websocket.Upgrader
}

func NewWSHandler(session *app.Session) *WSHandler {
	return &WSHandler{
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message    string `json:"message"`
	Validation bool   `json:"validation,omitempty"`
}

// ServeWS upgrades HTTP requests to websockets. Clients send
// {"type":"command","payload":<app.Command>} and receive "view" messages
// whenever the shared session changes, plus "error" replies to their own
// failed commands.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// single writer goroutine; gorilla connections allow one concurrent writer
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case view, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "view", Payload: view}:
				case <-writerDone:
					return
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var reply outboundMessage[any]
		switch inbound.Type {
		case "command":
			var cmd app.Command
			if err := json.Unmarshal(inbound.Payload, &cmd); err != nil {
				reply = errorMessage("invalid command payload", false)
				break
			}
			if _, err := h.session.Do(r.Context(), cmd); err != nil {
				reply = errorMessage(err.Error(), domain.IsValidation(err))
			}
		case "view":
			reply = outboundMessage[any]{Type: "view", Payload: h.session.View()}
		default:
			reply = errorMessage("unsupported message type", false)
		}
		if reply.Type != "" && !emit(send, writerDone, reply) {
			break
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// emit queues msg for the writer. It reports false once the writer has exited.
func emit(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

func errorMessage(msg string, validation bool) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg, Validation: validation}}
}
