package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func tagsHandler(models ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type m struct {
			Name string `json:"name"`
		}
		var out struct {
			Models []m `json:"models"`
		}
		for _, name := range models {
			out.Models = append(out.Models, m{Name: name})
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func TestAvailableModelPresent(t *testing.T) {
	srv := httptest.NewServer(tagsHandler("llama3:8b", "mistral"))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Model: "llama3"}, nil)
	if !c.Available(context.Background()) {
		t.Error("expected available")
	}
}

func TestAvailableModelMissing(t *testing.T) {
	srv := httptest.NewServer(tagsHandler("mistral"))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Model: "llama3"}, nil)
	if c.Available(context.Background()) {
		t.Error("expected unavailable when model is not pulled")
	}
}

func TestAvailableUnreachable(t *testing.T) {
	c := NewClient(Config{URL: "http://127.0.0.1:1", Model: "llama3", ProbeTimeout: 100 * time.Millisecond}, nil)
	start := time.Now()
	if c.Available(context.Background()) {
		t.Error("expected unavailable")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("probe must respect its timeout")
	}
}

func TestProbeTimeoutClamped(t *testing.T) {
	c := NewClient(Config{ProbeTimeout: time.Minute}, nil)
	if c.cfg.ProbeTimeout > 2*time.Second {
		t.Errorf("ProbeTimeout = %v, want at most 2s", c.cfg.ProbeTimeout)
	}
}

func TestParseIdentityFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/api/tags", tagsHandler("llama3"))
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["format"] != "json" {
			t.Errorf("format = %v, want json", req["format"])
		}
		if req["stream"] != false {
			t.Errorf("stream = %v, want false", req["stream"])
		}
		inner := map[string]string{
			"legal_name": "Acme Trading (Pty) Ltd",
			"vat_no":     "4200288134",
			"id_number":  "",
			"extra_key":  "noise",
		}
		innerJSON, _ := json.Marshal(inner)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": string(innerJSON)})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Model: "llama3"}, nil)
	fields, err := c.ParseIdentityFields(context.Background(), "some document text")
	if err != nil {
		t.Fatalf("ParseIdentityFields: %v", err)
	}
	if fields["tenant.name"] != "Acme Trading (Pty) Ltd" {
		t.Errorf("tenant.name = %q", fields["tenant.name"])
	}
	if fields["tenant.vat_no"] != "4200288134" {
		t.Errorf("tenant.vat_no = %q", fields["tenant.vat_no"])
	}
	if _, ok := fields["tenant.id_number"]; ok {
		t.Error("empty model values must be dropped")
	}
	if len(fields) != 2 {
		t.Errorf("fields = %v", fields)
	}
}

func TestParseIdentityFieldsFencedOutput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		fenced := "```json\n{\"company_name\": \"Acme Trading (Pty) Ltd\"}\n```"
		_ = json.NewEncoder(w).Encode(map[string]string{"response": fenced})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Model: "llama3"}, nil)
	fields, err := c.ParseIdentityFields(context.Background(), "text")
	if err != nil {
		t.Fatalf("ParseIdentityFields: %v", err)
	}
	if fields["tenant.name"] != "Acme Trading (Pty) Ltd" {
		t.Errorf("synonym+fence handling broken: %v", fields)
	}
}

func TestParseIdentityFieldsRejectsNonJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "I could not find any fields."})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Model: "llama3"}, nil)
	if _, err := c.ParseIdentityFields(context.Background(), "text"); err == nil {
		t.Error("expected error for non-JSON model output")
	}
}
