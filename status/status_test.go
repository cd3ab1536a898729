package status

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealthz(t *testing.T) {
	s, err := Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("starting status server: %v", err)
	}
	defer s.Close()

	s.RecordFrame(7)
	s.RecordFrame(9)

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("probing healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var h struct {
		Status  string `json:"status"`
		Frames  int64  `json:"frames"`
		Visible int64  `json:"visible"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}

	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
	if h.Frames != 2 {
		t.Errorf("frames = %d, want 2", h.Frames)
	}
	if h.Visible != 9 {
		t.Errorf("visible = %d, want 9", h.Visible)
	}
}
