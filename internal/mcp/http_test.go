package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/logging"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
)

func testTransport(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	h := NewHandler(testServer(), logging.New("test", "error"), 10*time.Millisecond)
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := testTransport(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestRootDescriptor(t *testing.T) {
	srv := testTransport(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
		Server string `json:"server"`
		Tools  int    `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Server != ServerName || body.Tools != 2 {
		t.Fatalf("unexpected descriptor: %+v", body)
	}
}

func TestRootUnknownPathIs404(t *testing.T) {
	srv := testTransport(t)

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestMessagesDispatch(t *testing.T) {
	srv := testTransport(t)

	req := `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`
	resp, err := http.Post(srv.URL+"/messages", "application/json", strings.NewReader(req))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var response protocol.Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response.Error != nil {
		t.Fatalf("unexpected error: %+v", response.Error)
	}
}

func TestMessagesRejectsInvalidJSON(t *testing.T) {
	srv := testTransport(t)

	resp, err := http.Post(srv.URL+"/messages", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var response protocol.Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response.Error == nil || response.Error.Code != -32700 {
		t.Fatalf("expected -32700, got %+v", response.Error)
	}
}

func TestMessagesRequiresPost(t *testing.T) {
	srv := testTransport(t)

	resp, err := http.Get(srv.URL + "/messages")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestSSEEndpointEventAndPings(t *testing.T) {
	srv := testTransport(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sse", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	event := readEvent(t, reader)
	if !strings.Contains(event, "event: endpoint") {
		t.Fatalf("first event is not endpoint: %q", event)
	}
	if !strings.Contains(event, "/messages?session_id=") {
		t.Fatalf("endpoint event lacks session: %q", event)
	}

	// The stream then idles with pings until we hang up.
	ping := readEvent(t, reader)
	if !strings.Contains(ping, "event: ping") {
		t.Fatalf("expected ping, got %q", ping)
	}
}

// readEvent consumes one SSE event (up to the blank line).
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF && b.Len() > 0 {
				return b.String()
			}
			t.Fatalf("read: %v", err)
		}
		if line == "\n" {
			return b.String()
		}
		b.WriteString(line)
	}
}
