package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// KeepaliveInterval is how often an idle stream receives a comment line.
const KeepaliveInterval = 30 * time.Second

// Producer builds the payload of one message.
type Producer func(ctx context.Context) (any, error)

// WriteMessage writes msg as an id/event/data frame. Data is JSON encoded on one line.
func WriteMessage(w io.Writer, msg Message) error {
	data := []byte("{}")
	if msg.Data != nil {
		var err error
		if data, err = json.Marshal(msg.Data); err != nil {
			return fmt.Errorf("error marshaling SSE data: %w", err)
		}
	}
	if msg.ID != 0 {
		if _, err := fmt.Fprintf(w, "id: %d\n", msg.ID); err != nil {
			return err
		}
	}
	if msg.Event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", msg.Event); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

// WriteKeepalive writes a comment line that clients ignore.
func WriteKeepalive(w io.Writer) error {
	_, err := io.WriteString(w, ": keepalive\n\n")
	return err
}

// PrepareStream sets the event-stream headers and returns the flusher of w.
func PrepareStream(w http.ResponseWriter) (http.Flusher, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return flusher, nil
}

// Handler streams every broadcast of a Manager to one HTTP client.
type Handler struct {
	mgr       *Manager
	event     string
	initial   Producer
	keepalive time.Duration
	logger    *slog.Logger
}

// NewHandler returns a Handler for mgr. When initial is set, its payload is sent as
// soon as the client connects, so the first frame does not wait for the next tick.
func NewHandler(mgr *Manager, event string, initial Producer) *Handler {
	return &Handler{
		mgr:       mgr,
		event:     event,
		initial:   initial,
		keepalive: KeepaliveInterval,
		logger:    mgr.logger,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, err := PrepareStream(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	clientID := r.Header.Get("X-Client-Id")
	if clientID == "" {
		clientID = fmt.Sprintf("%s-%d", r.RemoteAddr, time.Now().UnixNano())
	}
	messages := h.mgr.AddClient(clientID)
	defer h.mgr.RemoveClient(clientID)

	if h.initial != nil {
		data, err := h.initial(r.Context())
		if err != nil {
			h.logger.Error("sse initial payload", "client", clientID, "err", err)
			return
		}
		if err := WriteMessage(w, Message{ID: h.mgr.NextID(), Event: h.event, Data: data}); err != nil {
			return
		}
		flusher.Flush()
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := WriteMessage(w, msg); err != nil {
				h.logger.Debug("sse write failed", "client", clientID, "err", err)
				return
			}
			flusher.Flush()
		case <-keepalive.C:
			if err := WriteKeepalive(w); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
