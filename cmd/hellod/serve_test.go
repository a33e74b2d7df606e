package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"hellod/internal/config"
	"hellod/pkg/types"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func startServe(t *testing.T, apiURL string) string {
	t.Helper()
	port := findFreePort(t)
	cfg := config.Default()
	cfg.Addr = fmt.Sprintf("127.0.0.1:%d", port)
	cfg.APIURL = apiURL
	cfg.RequestTimeoutMS = 2000
	opts := &options{cfg: cfg, log: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, opts) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("serve returned %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("serve did not stop")
		}
	})

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/readyz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return base
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become ready in time")
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode, b
}

func greeting(t *testing.T, base string) string {
	t.Helper()
	code, body := do(t, http.MethodGet, base+"/views/hello", "")
	if code != http.StatusOK {
		t.Fatalf("/views/hello %d %s", code, body)
	}
	var v types.ViewResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json: %v body=%s", err, body)
	}
	return v.Text
}

func TestServe_Flow(t *testing.T) {
	api := fakeUsersAPI(t)
	base := startServe(t, api.URL)

	if got := greeting(t, base); got != "Hello stranger!" {
		t.Fatalf("initial greeting %q", got)
	}

	code, body := do(t, http.MethodPost, base+"/users/2/load", "")
	if code != http.StatusOK {
		t.Fatalf("load %d %s", code, body)
	}

	code, body = do(t, http.MethodPost, base+"/actions", `{"type":"enthusiasm/INCREMENT"}`)
	if code != http.StatusOK {
		t.Fatalf("increment %d %s", code, body)
	}
	if got := greeting(t, base); got != "Hello Janet!!" {
		t.Fatalf("greeting after load %q", got)
	}

	code, _ = do(t, http.MethodPost, base+"/users/9/load", "")
	if code != http.StatusNotFound {
		t.Fatalf("missing user: expected 404, got %d", code)
	}
	if got := greeting(t, base); got != "Hello Janet!!" {
		t.Fatalf("failed load changed state: %q", got)
	}

	code, body = do(t, http.MethodGet, base+"/state", "")
	if code != http.StatusOK {
		t.Fatalf("/state %d", code)
	}
	var st types.StateResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.User == nil || st.User.ID != 2 || st.EnthusiasmLevel != 2 {
		t.Fatalf("unexpected state %+v", st)
	}
}
