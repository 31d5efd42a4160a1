package middleware

import (
	"net/http"
	"os"
	"strings"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://coach-os-web.vercel.app",
}

// allowedOrigins devolve as origens permitidas. CORS_ORIGINS
// (separado por vírgula) substitui a lista padrão.
func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return defaultOrigins
}

func isOriginAllowed(origin string) bool {
	for _, allowed := range allowedOrigins() {
		if origin == strings.TrimSpace(allowed) {
			return true
		}
	}
	return false
}

func Cors() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if isOriginAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
