package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gauchoeats/gaucho/internal/config"
)

// APIKeyHeader carries the ingestion key on POST /wait_time
const APIKeyHeader = "api_key"

// APIKeyAuth rejects requests whose api_key header is not one of the configured keys
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(APIKeyHeader)

			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			if !validKey(cfg.APIKeys, apiKey) {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func validKey(keys []string, candidate string) bool {
	valid := false
	for _, key := range keys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(candidate)) == 1 {
			valid = true
		}
	}
	return valid
}
