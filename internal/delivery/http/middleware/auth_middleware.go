package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/auth"
)

// AuthMiddleware verifies the bearer token and loads the account. The role
// and status always come from the database, never from the token, so a
// block or role change takes effect on the next request.
// extractToken pulls the credential from the Authorization header or the
// auth_token cookie. Both auth passes accept both transports.
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

func AuthMiddleware(tokens *auth.TokenService, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		account, err := authUC.GetCurrentAccount(c.Request.Context(), claims.AccountID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Account not found", nil)
			c.Abort()
			return
		}
		if account.Status == domain.AccountBlocked {
			response.Error(c, http.StatusForbidden, "This account has been blocked", nil)
			c.Abort()
			return
		}

		// Handlers read via gin keys, usecases via the request context.
		c.Set(string(domain.KeyAccountID), account.ID)
		c.Set(string(domain.KeyAccountEmail), account.Email)
		c.Set(string(domain.KeyAccountRole), string(account.Role))

		ctx := context.WithValue(c.Request.Context(), domain.KeyAccountID, account.ID)
		ctx = context.WithValue(ctx, domain.KeyAccountEmail, account.Email)
		ctx = context.WithValue(ctx, domain.KeyAccountRole, account.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuth resolves credentials when a token is present but lets
// anonymous requests through. Public offer routes use it so an owner or
// admin sees their own disabled offers while everyone else only sees
// active ones.
func OptionalAuth(tokens *auth.TokenService, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.Next()
			return
		}
		account, err := authUC.GetCurrentAccount(c.Request.Context(), claims.AccountID)
		if err != nil || account.Status == domain.AccountBlocked {
			c.Next()
			return
		}

		c.Set(string(domain.KeyAccountID), account.ID)
		c.Set(string(domain.KeyAccountEmail), account.Email)
		c.Set(string(domain.KeyAccountRole), string(account.Role))

		ctx := context.WithValue(c.Request.Context(), domain.KeyAccountID, account.ID)
		ctx = context.WithValue(ctx, domain.KeyAccountEmail, account.Email)
		ctx = context.WithValue(ctx, domain.KeyAccountRole, account.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles restricts a route group to the given roles. AuthMiddleware
// must run first.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := domain.Role(c.GetString(string(domain.KeyAccountRole)))
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "You do not have access to this resource", nil)
		c.Abort()
	}
}
