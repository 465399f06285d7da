package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/response"
	"github.com/natashawa225/sea-catering/pkg/types"
)

const KeyPrincipal = "principal"

// Claims is the access token issued by the identity provider. Only the fields the service
// reads are declared.
type Claims struct {
	Email        string       `json:"email,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.StandardClaims
}

type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Name     string `json:"name,omitempty"`
}

func (c *Claims) principal() *types.Principal {
	name := c.UserMetadata.FullName
	if name == "" {
		name = c.UserMetadata.Name
	}
	if name == "" {
		name = c.Email
	}
	return &types.Principal{UserID: c.Subject, DisplayName: name, Email: c.Email}
}

// ParseToken verifies an HS256 token signed with secret. A non-empty issuer must match iss.
func ParseToken(raw, secret, issuer string) (*types.Principal, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is not configured")
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	if issuer != "" && !claims.VerifyIssuer(issuer, true) {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	return claims.principal(), nil
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func abort(c *gin.Context, code response.APIResponseCode, data any) {
	c.Set(KeyResponseCode, code)
	c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](code, data))
}

// AuthMiddleware requires a valid bearer token and stores the caller as a *types.Principal.
// The request logger and context gain user_id.
func AuthMiddleware(cfg *config.Config, base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abort(c, response.APIResponseCodeUnauthenticated, "missing bearer token")
			return
		}
		p, err := ParseToken(raw, cfg.Auth.JWTSecret, cfg.Auth.Issuer)
		if err != nil {
			logctx.FromGin(c, base).Infow("rejected access token", "err", err)
			abort(c, response.APIResponseCodeUnauthenticated, "invalid token")
			return
		}

		reqLogger := logctx.FromGin(c, base).With("user_id", p.UserID)
		c.Set(KeyPrincipal, p)
		c.Set(logctx.KeyUserID, p.UserID)
		c.Set(logctx.KeyLogger, reqLogger)
		ctx := logctx.WithUserID(c.Request.Context(), p.UserID)
		c.Request = c.Request.WithContext(logctx.WithLogger(ctx, reqLogger))
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (*types.Principal, bool) {
	v, ok := c.Get(KeyPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*types.Principal)
	return p, ok && p != nil
}

// AdminChecker is satisfied by *role.Service.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(roles AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abort(c, response.APIResponseCodeUnauthenticated, "missing principal")
			return
		}
		admin, err := roles.IsAdmin(c.Request.Context(), p.UserID)
		if err != nil {
			resp := response.FromError(err)
			abort(c, resp.Code, resp.Data)
			return
		}
		if !admin {
			abort(c, response.APIResponseCodeForbidden, "admin role required")
			return
		}
		c.Next()
	}
}
