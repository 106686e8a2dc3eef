package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// Challenge is sent with every 401 response.
const Challenge = `Basic realm="Credentials required"`

// CredentialVerifier resolves an account id from basic credentials.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (int64, error)
}

// Authenticate checks HTTP basic credentials and injects the account id into the context.
type Authenticate struct {
	verifier       CredentialVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier CredentialVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Require rejects requests without valid credentials with 401 and a basic challenge.
// Missing and wrong credentials get the same response.
func (m *Authenticate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := m.verifier.Verify(r.Context(), email, password)
		if err != nil {
			if errors.Is(err, model.ErrUnauthenticated) {
				unauthorized(w)
				return
			}
			m.logger.Error("failed to verify credentials", "error", err.Error())
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserIDToContext(r.Context(), userID)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", Challenge)
	http.Error(w, "Credentials required", http.StatusUnauthorized)
}
