package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// APIServerOptions configures the stub classification API
type APIServerOptions struct {
	// Categoria/Confianca/Resposta returned by both classify endpoints
	Categoria string
	Confianca float64
	Resposta  string
	// DefaultProvider returned by the providers endpoint
	DefaultProvider string
	// FailStatus, when non-zero, makes classify endpoints fail with
	// this status and FailDetail as the {"detail": ...} body
	FailStatus int
	FailDetail string
	// FailProviders makes the providers endpoint return 500
	FailProviders bool
}

// APIServer wraps an httptest.Server speaking the classification API's
// wire format
type APIServer struct {
	*httptest.Server

	mu            sync.Mutex
	classifyCalls int
	lastProvider  string
	lastConteudo  string
	lastFileName  string
}

// ClassifyCalls returns how many classify requests the server has seen
func (s *APIServer) ClassifyCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classifyCalls
}

// LastProvider returns the provider of the most recent classify request
func (s *APIServer) LastProvider() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastProvider
}

// LastConteudo returns the content of the most recent text classify request
func (s *APIServer) LastConteudo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastConteudo
}

// LastFileName returns the uploaded file name of the most recent file
// classify request
func (s *APIServer) LastFileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFileName
}

// StartAPIServer starts a stub classification API. The server is torn
// down when the test finishes.
func StartAPIServer(t *testing.T, opts APIServerOptions) *APIServer {
	t.Helper()

	if opts.Categoria == "" {
		opts.Categoria = "Produtivo"
	}
	if opts.Resposta == "" {
		opts.Resposta = "Prezado(a), agradecemos o contato."
	}
	if opts.DefaultProvider == "" {
		opts.DefaultProvider = "openai"
	}

	srv := &APIServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/emails/providers", func(w http.ResponseWriter, r *http.Request) {
		if opts.FailProviders {
			writeDetail(w, http.StatusInternalServerError, "providers unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"default":%q,"providers":{"openai":{"available":true,"model":"gpt-4o-mini"},"gemini":{"available":false,"model":"gemini-2.0-flash"}}}`, opts.DefaultProvider)
	})

	mux.HandleFunc("/emails/classificar", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Conteudo string `json:"conteudo"`
			Provider string `json:"provider"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		srv.mu.Lock()
		srv.classifyCalls++
		srv.lastProvider = req.Provider
		srv.lastConteudo = req.Conteudo
		srv.mu.Unlock()

		if opts.FailStatus != 0 {
			writeDetail(w, opts.FailStatus, opts.FailDetail)
			return
		}
		writeOutcome(w, opts, "")
	})

	mux.HandleFunc("/emails/classificar/arquivo", func(w http.ResponseWriter, r *http.Request) {
		fileName := ""
		if file, header, err := r.FormFile("arquivo"); err == nil {
			fileName = header.Filename
			_ = file.Close()
		}

		srv.mu.Lock()
		srv.classifyCalls++
		srv.lastProvider = r.URL.Query().Get("provider")
		srv.lastFileName = fileName
		srv.mu.Unlock()

		if opts.FailStatus != 0 {
			writeDetail(w, opts.FailStatus, opts.FailDetail)
			return
		}
		writeOutcome(w, opts, fileName)
	})

	mux.HandleFunc("/emails/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"healthy","service":"email-classifier"}`)
	})

	srv.Server = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeOutcome(w http.ResponseWriter, opts APIServerOptions, fileName string) {
	w.Header().Set("Content-Type", "application/json")
	payload := map[string]interface{}{
		"categoria":         opts.Categoria,
		"confianca":         opts.Confianca,
		"resposta_sugerida": opts.Resposta,
		"modelo_usado":      "gpt-4o-mini",
	}
	if fileName != "" {
		payload["nome_arquivo"] = fileName
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
