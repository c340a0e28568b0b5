// Package server exposes the chat responder over HTTP: a minimal browser
// form plus a small JSON API.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/runsage/runsage/internal/chat"
	"github.com/runsage/runsage/pkg/models"
)

// Server is the HTTP front end over a chat responder.
type Server struct {
	responder *chat.Responder
	manifest  *models.Manifest
	addr      string
}

// NewServer creates a server over a loaded responder and its manifest
func NewServer(responder *chat.Responder, manifest *models.Manifest, addr string) *Server {
	return &Server{
		responder: responder,
		manifest:  manifest,
		addr:      addr,
	}
}

// Handler builds the route table, exported so tests can drive it directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/ask", s.handleAsk)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/model", s.handleModel)

	return loggingMiddleware(mux)
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("Server listening on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleIndex renders the chat form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>runsage</title>
    <style>
        body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
        #messages { min-height: 200px; border: 1px solid #ccc; border-radius: 4px; padding: 1rem; margin-bottom: 1rem; }
        .message { margin: 0.5rem 0; }
        .message.user { text-align: right; color: #333; }
        .message.bot { color: #0a5; }
        form { display: flex; gap: 0.5rem; }
        input { flex: 1; padding: 0.5rem; }
    </style>
</head>
<body>
    <h1>runsage</h1>
    <p>Ask about the latest test run: results, counts, flaky tests, timing.</p>

    <div id="messages"></div>

    <form id="ask-form" onsubmit="ask(event)">
        <input type="text" id="question" name="question" placeholder="e.g. how many tests failed" autocomplete="off" required>
        <button type="submit">Ask</button>
    </form>

    <script>
        async function ask(e) {
            e.preventDefault();
            const input = document.getElementById('question');
            const messages = document.getElementById('messages');
            const question = input.value.trim();
            if (!question) return;

            messages.innerHTML += '<div class="message user">' + escapeHtml(question) + '</div>';
            input.value = '';

            try {
                const resp = await fetch('/api/ask', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({question: question})
                });
                const data = await resp.json();
                messages.innerHTML += '<div class="message bot">' + escapeHtml(data.answer || data.error) + '</div>';
            } catch (err) {
                messages.innerHTML += '<div class="message bot">Connection error</div>';
            }
            messages.scrollTop = messages.scrollHeight;
        }

        function escapeHtml(text) {
            const div = document.createElement('div');
            div.textContent = text;
            return div.innerHTML;
        }
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// handleAsk answers one question as JSON.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var question string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		question = req.Question
	} else {
		r.ParseForm()
		question = r.FormValue("question")
	}

	question = strings.TrimSpace(question)
	if question == "" {
		writeJSONError(w, http.StatusBadRequest, "question required")
		return
	}

	answer, err := s.responder.Respond(r.Context(), question)
	if err != nil {
		log.Printf("Failed to answer %q: %v", question, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to resolve question")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleModel returns the manifest of the model being served.
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.manifest)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}
