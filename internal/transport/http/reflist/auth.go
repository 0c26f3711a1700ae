package reflist

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrUnauthorized is returned by gates that reject a caller.
var ErrUnauthorized = errors.New("unauthorized")

// AdminGate decides whether a request comes from an administrator.
type AdminGate interface {
	Authorize(r *http.Request) error
}

// TokenGate accepts requests carrying a shared admin token, either as a
// bearer token or in X-Admin-Token.
type TokenGate struct {
	token []byte
}

func NewTokenGate(token string) *TokenGate {
	return &TokenGate{token: []byte(token)}
}

func (g *TokenGate) Authorize(r *http.Request) error {
	if len(g.token) == 0 {
		return ErrUnauthorized
	}
	got := r.Header.Get("X-Admin-Token")
	if h := r.Header.Get("Authorization"); got == "" && strings.HasPrefix(h, "Bearer ") {
		got = strings.TrimPrefix(h, "Bearer ")
	}
	if got == "" || subtle.ConstantTimeCompare([]byte(got), g.token) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// RequireAdmin stops the request with 401 unless gate accepts it.
func RequireAdmin(gate AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(c.Request); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Status: statusError, Message: ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}
