package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")
const companyIDKey = contextKey("companyID")

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetCompanyIDFromContext retrieves the active company ID resolved by the
// company scope middleware.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(companyIDKey); v != nil {
		if companyID, ok := v.(string); ok && companyID != "" {
			return companyID, true
		}
	}
	return "", false
}

// withUserID stores the authenticated user ID in the standard context.
func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// withCompanyID stores the active company ID in the standard context.
func withCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, companyIDKey, companyID)
}
