package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
)

// DefaultPingInterval is the idle keep-alive cadence on /sse.
const DefaultPingInterval = 30 * time.Second

// Handler serves the MCP transport: GET /sse for the server→client
// event stream and POST /messages for client→server calls.
type Handler struct {
	server       *Server
	log          *logrus.Entry
	pingInterval time.Duration
}

// NewHandler wires a dispatcher into the HTTP transport.
func NewHandler(server *Server, log *logrus.Entry, pingInterval time.Duration) *Handler {
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	return &Handler{server: server, log: log, pingInterval: pingInterval}
}

// Register mounts the transport routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleRoot)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/sse", h.handleSSE)
	mux.HandleFunc("/messages", h.handleMessages)
}

// Run serves the transport on addr until the listener fails.
func Run(server *Server, addr string, pingInterval time.Duration, log *logrus.Entry) error {
	mux := http.NewServeMux()
	NewHandler(server, log, pingInterval).Register(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Infof("MCP server listening on %s (%d tools)", addr, server.Toolbox().Len())
	return srv.ListenAndServe()
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleRoot answers the health descriptor on exactly "/".
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{
		"status": "ok",
		"server": ServerName,
		"tools":  h.server.Toolbox().Len(),
	}, http.StatusOK)
}

// handleSSE holds the event stream open: one endpoint event telling the
// client where to POST, then idle pings until the peer disconnects.
// Liveness signaling only; no data flows here.
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	session := uuid.NewString()
	h.log.WithField("session", session).Infof("SSE connection from %s", r.RemoteAddr)

	endpoint, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  "endpoint",
		"params": map[string]string{
			"endpoint": "/messages?session_id=" + session,
		},
	})
	fmt.Fprintf(w, "event: endpoint\ndata: %s\n\n", endpoint)
	flusher.Flush()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.log.WithField("session", session).Info("SSE client disconnected")
			return
		case <-ticker.C:
			fmt.Fprint(w, "event: ping\ndata: \n\n")
			flusher.Flush()
		}
	}
}

// handleMessages handles one JSON-RPC request per POST.
func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req protocol.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, protocol.Response{JSONRPC: "2.0", Error: &protocol.ResponseError{Code: -32700, Message: "invalid JSON"}}, http.StatusBadRequest)
		return
	}

	h.log.WithField("method", req.Method).Debug("handling message")
	writeJSON(w, h.server.Handle(r.Context(), req), http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
