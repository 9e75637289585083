package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "user"

type userGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// authenticate resolves the bearer identity for a single request. On failure
// it returns a nil user plus the status and message to respond with; there is
// exactly one outcome per request, so a rejection can never be followed by a
// second response write.
func authenticate(c *gin.Context, users userGetter) (*domain.User, int, string) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, http.StatusBadRequest, "Not authorized, token missing"
	}

	userID, err := service.ParseJWT(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, http.StatusUnauthorized, "Token invalid or expired"
	}

	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil, http.StatusNotFound, "User not found"
	}

	return user, 0, ""
}

// Auth verifies the bearer token on every request and attaches the resolved
// user, without the password hash, to the gin context. Identities are never
// cached across requests.
func Auth(users userGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, status, message := authenticate(c, users)
		if user == nil {
			authRejections.WithLabelValues(strconv.Itoa(status)).Inc()
			c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
			return
		}
		c.Set(identityKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity attached by Auth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
