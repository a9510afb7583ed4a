package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-ordering/internal/contract"
	customersvc "restaurant-ordering/internal/service/customer"
)

const (
	ctxCustomerID = "customerID"
	ctxRole       = "role"
)

type tokenParser interface {
	ParseToken(token string) (*customersvc.Claims, error)
}

func authMiddleware(tokens tokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, contract.Error{Error: "missing bearer token"})
			return
		}
		claims, err := tokens.ParseToken(raw)
		if err != nil || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, contract.Error{Error: "invalid token"})
			return
		}
		c.Set(ctxCustomerID, claims.Subject)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// requireRole must run after authMiddleware.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, contract.Error{Error: "forbidden"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func customerID(c *gin.Context) string {
	return c.GetString(ctxCustomerID)
}
