package middleware

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/user"
)

// AdminKey for storing the authenticated admin in Gin context
const AdminKey = "admin"

// AdminResolver looks up a console operator by id.
type AdminResolver func(id string) (user.Admin, bool)

// AdminAuth validates the console bearer token: base64 of "adminID:issuedAt".
// The token carries no signature; it is an opaque session handle resolved
// against the local admin list.
func AdminAuth(resolve AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		decoded, err := base64.StdEncoding.DecodeString(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		adminID, _, ok := strings.Cut(string(decoded), ":")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		admin, ok := resolve(adminID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(AdminKey, admin)
		c.Next()
	}
}

// GetAdmin extracts the authenticated admin from the Gin context.
func GetAdmin(c *gin.Context) (user.Admin, bool) {
	v, exists := c.Get(AdminKey)
	if !exists {
		return user.Admin{}, false
	}
	admin, ok := v.(user.Admin)
	return admin, ok
}

// Token issues a session token for an admin.
func Token(adminID string, issuedAtMillis int64) string {
	raw := adminID + ":" + strconv.FormatInt(issuedAtMillis, 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
