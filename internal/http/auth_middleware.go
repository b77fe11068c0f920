package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service/auth"
)

type authContextKey string

const contextKeyUser authContextKey = "taskdeck-auth-user"

type contextSetter interface {
	SetContext(context.Context)
}

// requireAuth ensures the request carries a valid bearer token before
// invoking the handler, and stores the resolved user on the context.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// ensureAuth validates the Authorization header and enriches the context
// with the acting user. Infrastructure failures are reported as such
// rather than folded into the unauthorized outcome.
func (r *Router) ensureAuth(w http.ResponseWriter, req *http.Request) (context.Context, bool) {
	token, err := bearerToken(req.Header.Get("Authorization"))
	if err != nil {
		r.logger.Warn("authorization header invalid", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "authentication required")
		return req.Context(), false
	}
	user, err := r.auth.Authorize(req.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			r.logger.Warn("token validation failed", "path", req.URL.Path)
			writeError(w, http.StatusUnauthorized, "authentication required")
		} else {
			r.logger.Error("authorization lookup failed", "error", err, "path", req.URL.Path)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return req.Context(), false
	}
	ctx := context.WithValue(req.Context(), contextKeyUser, user)
	return ctx, true
}

// userFromContext extracts the resolved user from context.
func userFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(contextKeyUser).(*domain.User)
	return user, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
