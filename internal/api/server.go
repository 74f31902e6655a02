package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured. The mutating
// calculation route requires the API key when one is set.
func NewServer(port string, handler *Handler, apiKey string) *http.Server {
	mux := http.NewServeMux()

	calculate := http.HandlerFunc(handler.Calculate)
	if apiKey != "" {
		mux.Handle("POST /api/v1/calculations", requireAuth(apiKey, calculate))
	} else {
		mux.Handle("POST /api/v1/calculations", calculate)
	}

	mux.HandleFunc("GET /api/v1/calculations/latest", handler.GetLatestCalculation)
	mux.HandleFunc("GET /api/v1/calculations", handler.ListCalculations)
	mux.HandleFunc("GET /api/v1/rates", handler.ListRates)
	mux.HandleFunc("GET /api/v1/rates/{currency}", handler.GetRate)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
