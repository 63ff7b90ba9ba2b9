package middleware

import (
	"crypto/rsa"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"graspnest.app/api-server/common/logger"
	"graspnest.app/api-server/core/config"
	"graspnest.app/api-server/internal/http/dto"
	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/service"
)

const principalKey = "principal"

type realmClaims struct {
	jwt.RegisteredClaims
	Email             string                   `json:"email"`
	PreferredUsername string                   `json:"preferred_username"`
	ResourceAccess    map[string]resourceRoles `json:"resource_access"`
}

type resourceRoles struct {
	Roles []string `json:"roles"`
}

// ParseRealmPublicKey accepts either a full PEM block or the bare base64
// key body as the identity provider's admin console exports it.
func ParseRealmPublicKey(raw string) (*rsa.PublicKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("realm public key is empty")
	}
	if !strings.HasPrefix(raw, "-----BEGIN") {
		raw = "-----BEGIN PUBLIC KEY-----\n" + raw + "\n-----END PUBLIC KEY-----"
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing realm public key: %w", err)
	}
	return key, nil
}

// Principal authenticates the request with the realm-signed bearer token
// and stores the resulting principal on the gin context. The roles are
// the client roles granted for our configured client id.
func Principal(cfg config.KeycloakConfig) (gin.HandlerFunc, error) {
	key, err := ParseRealmPublicKey(cfg.RealmPublicKey)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("missing bearer token"))
			return
		}

		claims := &realmClaims{}
		_, err := jwt.ParseWithClaims(token, claims,
			func(t *jwt.Token) (any, error) { return key, nil },
			jwt.WithValidMethods([]string{"RS256"}),
		)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("invalid token"))
			return
		}

		email := claims.Email
		if email == "" {
			email = claims.PreferredUsername
		}
		principal := service.Principal{
			Email: strings.ToLower(email),
			Roles: claims.ResourceAccess[cfg.ClientID].Roles,
		}
		c.Set(principalKey, principal)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			PrincipalEmail: logger.Ptr(principal.Email),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}, nil
}

// GetPrincipal returns the principal set by the Principal middleware.
func GetPrincipal(c *gin.Context) (service.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return service.Principal{}, false
	}
	p, ok := v.(service.Principal)
	return p, ok
}

// RequireRoles rejects requests whose principal holds none of the given
// roles.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("missing bearer token"))
			return
		}
		for _, want := range roles {
			for _, held := range principal.Roles {
				if held == string(want) {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("insufficient role"))
	}
}
