package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/melkersson/lais/pkg/localai"
)

func demoServer(t *testing.T, modelsStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		if modelsStatus != http.StatusOK {
			w.WriteHeader(modelsStatus)
			_, _ = w.Write([]byte("warming up"))
			return
		}
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test","object":"model"}]}`))
	})
	mux.HandleFunc("/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fl, _ := w.(http.Flusher)
		for _, chunk := range []string{"Hello", " ", "world"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"text\":\"%s\"}]}\n", chunk)
			if fl != nil {
				fl.Flush()
			}
		}
		fmt.Fprintln(w, "data: [DONE]")
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func Test_run_printsModelsAndStreamedResponse(t *testing.T) {
	ts := demoServer(t, http.StatusOK)
	client := localai.New(ts.URL)

	out := testboil.CaptureStdout(t, func(t *testing.T) {
		if err := run(context.Background(), client, "test", defaultExample); err != nil {
			t.Fatalf("run() error: %v", err)
		}
	})

	testboil.AssertStringContains(t, out, "Available Models:")
	testboil.AssertStringContains(t, out, `"id": "test"`)
	testboil.AssertStringContains(t, out, "Example: AI Explanation")
	testboil.AssertStringContains(t, out, "Hello world")
	testboil.AssertStringContains(t, out, "Total time:")
	testboil.AssertStringContains(t, out, "Total response: Hello world")
}

func Test_run_continuesWhenModelListingFails(t *testing.T) {
	ts := demoServer(t, http.StatusServiceUnavailable)
	client := localai.New(ts.URL)

	out := testboil.CaptureStdout(t, func(t *testing.T) {
		if err := run(context.Background(), client, "test", defaultExample); err != nil {
			t.Fatalf("run() error: %v", err)
		}
	})

	testboil.AssertStringContains(t, out, "Total response: Hello world")
}

func Test_run_failsOnCompletionError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/completions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("no such model"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	client := localai.New(ts.URL)

	testboil.CaptureStdout(t, func(t *testing.T) {
		err := run(context.Background(), client, "test", defaultExample)
		if err == nil {
			t.Fatal("expected error from completion endpoint")
		}
		if !strings.Contains(err.Error(), "no such model") {
			t.Fatalf("expected response body in error, got: %v", err)
		}
	})
}

func Test_setupFlags(t *testing.T) {
	dflt := Config{APIBase: localai.DefaultAPIBase, Model: "phi-3.5-mini-instruct"}
	tests := []struct {
		name      string
		args      []string
		wantModel string
		wantTitle string
		wantMsg   string
		wantErr   bool
	}{
		{
			name:      "no args falls back to fixed example",
			args:      []string{},
			wantModel: "phi-3.5-mini-instruct",
			wantTitle: "AI Explanation",
			wantMsg:   "Explain what AI is in two sentences.",
		},
		{
			name:      "title and content tokens",
			args:      []string{"-t", "My Example", "This is an example.", "It has two parts."},
			wantModel: "phi-3.5-mini-instruct",
			wantTitle: "My Example",
			wantMsg:   "This is an example. It has two parts.",
		},
		{
			name:      "long title flag",
			args:      []string{"-title", "Greeting", "Say", "hello"},
			wantModel: "phi-3.5-mini-instruct",
			wantTitle: "Greeting",
			wantMsg:   "Say hello",
		},
		{
			name:      "content without title falls back",
			args:      []string{"just", "content"},
			wantModel: "phi-3.5-mini-instruct",
			wantTitle: "AI Explanation",
			wantMsg:   "Explain what AI is in two sentences.",
		},
		{
			name:      "chat model override",
			args:      []string{"-cm", "mistral-7b"},
			wantModel: "mistral-7b",
			wantTitle: "AI Explanation",
			wantMsg:   "Explain what AI is in two sentences.",
		},
		{
			name:    "mutually exclusive title flags",
			args:    []string{"-t", "a", "-title", "b", "content"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, ex, err := setupFlags(dflt, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("setupFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if conf.Model != tt.wantModel {
				t.Fatalf("model = %q, want %q", conf.Model, tt.wantModel)
			}
			if ex.Title != tt.wantTitle {
				t.Fatalf("title = %q, want %q", ex.Title, tt.wantTitle)
			}
			if len(ex.Messages) != 1 || ex.Messages[0].Content != tt.wantMsg {
				t.Fatalf("messages = %+v, want single user message %q", ex.Messages, tt.wantMsg)
			}
		})
	}
}
