package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/account"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Middleware holds the request gates. It needs the token service to
// verify bearer credentials.
type Middleware struct {
	tokens *TokenService
}

// NewMiddleware creates the authentication/authorization middleware
func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate validates the bearer token and attaches the decoded
// claims to the request context. Missing or invalid tokens end the
// request with 401; the raw token is never logged.
func (m *Middleware) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString, err := ExtractTokenFromHeader(r)
		if err != nil {
			log.WithFields(log.Fields{"path": r.URL.Path}).Warn("No token provided for authentication")
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "Access token required"})
			return
		}

		claims, err := m.tokens.ValidateToken(tokenString)
		if err != nil {
			log.WithFields(log.Fields{"path": r.URL.Path}).Warn("Invalid token provided")
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

// Authorize authenticates the request and then checks the identity's
// role against the allow-list. The missing-identity branch is a
// defensive check for gate-ordering bugs, not the primary
// authentication path.
func (m *Middleware) Authorize(next httprouter.Handle, roles ...account.Role) httprouter.Handle {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims := GetUserFromContext(r.Context())
		if claims == nil {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
			return
		}

		role := account.Role(claims.Role)
		for _, allowed := range roles {
			if role == allowed {
				next(w, r, ps)
				return
			}
		}

		log.WithFields(log.Fields{
			"userId":        claims.UserID,
			"userRole":      claims.Role,
			"requiredRoles": roles,
			"path":          r.URL.Path,
		}).Warn("Unauthorized access attempt")
		writeJSON(w, http.StatusForbidden, ErrorResponse{Message: "Access denied. Insufficient permissions."})
	})
}

// RequireAdmin restricts the route to administrators
func (m *Middleware) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return m.Authorize(next, account.RoleAdmin)
}

// GetUserFromContext gets user claims from context
func GetUserFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
