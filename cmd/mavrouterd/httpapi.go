package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"github.com/avionics-go/mavrouter/internal/apierr"
	"github.com/avionics-go/mavrouter/internal/obs"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// serveHTTP runs the REST/WebSocket control plane until ctx is cancelled.
// When jwtSecret is non-empty, the mutating routes under /api/v1 require a
// bearer token signed with it; read-only routes and /health stay open.
func serveHTTP(ctx context.Context, router *Router, addr, jwtSecret string) error {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handleStatus(router))
		r.Get("/connections", handleConnections(router))

		r.Group(func(r chi.Router) {
			if jwtSecret != "" {
				r.Use(requireJWT(jwtSecret))
			}
			r.Post("/chains/reload", handleChainsReload)
		})
	})

	r.Get("/ws/monitor", handleMonitorWebSocket(router))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		obs.Log.WithFields(map[string]interface{}{
			"method":   req.Method,
			"path":     req.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("control-plane request")
	})
}

func requireJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			auth := req.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeAPIError(w, apierr.ErrUnauthorized)
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			_, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil {
				writeAPIError(w, apierr.Wrap(err, apierr.ErrUnauthorized.Code, apierr.ErrUnauthorized.Message, apierr.ErrUnauthorized.Status))
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleStatus(router *Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conns := router.Connections()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"connections": len(conns),
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func handleConnections(router *Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conns := router.Connections()
		out := make([]map[string]interface{}, 0, len(conns))
		for name, c := range conns {
			out = append(out, map[string]interface{}{
				"name":   name,
				"id":     c.ID.String(),
				"mirror": c.Mirror,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// handleChainsReload is a placeholder for hot-reloading the firewall
// configuration; reload requires rebuilding the Filter and rebinding every
// Connection, which this router does not yet support without a restart.
func handleChainsReload(w http.ResponseWriter, r *http.Request) {
	writeAPIError(w, apierr.ErrReloadUnsupported)
}

func handleMonitorWebSocket(router *Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			obs.Log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				status := map[string]interface{}{
					"connections": len(router.Connections()),
					"time":        time.Now().UTC().Format(time.RFC3339),
				}
				if err := conn.WriteJSON(status); err != nil {
					return
				}
			case <-r.Context().Done():
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, e *apierr.APIError) {
	writeJSON(w, e.Status, map[string]string{"code": e.Code, "message": e.Message})
}
