/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/tcdirect/direct/config"
	"github.com/tcdirect/direct/model"
)

// CallerKey is the gin context key holding the authenticated model.Caller.
const CallerKey = "caller"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the bearer token claims identifying the caller.
type Claims struct {
	UserID int64    `json:"userId"`
	Handle string   `json:"handle,omitempty"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Caller converts the claims into the identity queries run on behalf of.
func (c *Claims) Caller() model.Caller {
	roles := make([]model.AccessLevel, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, model.AccessLevel(strings.ToUpper(r)))
	}
	return model.Caller{UserID: c.UserID, Handle: c.Handle, Roles: roles}
}

type AuthMiddleware struct {
	secret string
	verify bool
}

// NewAuthMiddleware verifies HS256 signatures with the configured secret when the server runs
// in secure mode. Otherwise tokens are only decoded, the gateway in front having verified them.
func NewAuthMiddleware(conf *config.Configuration) *AuthMiddleware {
	if !conf.Server.Secure {
		logrus.Warn("server.secure is off: bearer token signatures are not verified, only expiry is checked")
	}
	return &AuthMiddleware{
		secret: conf.Server.JWTSecret,
		verify: conf.Server.Secure,
	}
}

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := m.ParseToken(token)
		if err != nil {
			logrus.WithError(err).Debug("rejecting bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if claims.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token carries no user id"})
			return
		}

		c.Set(CallerKey, claims.Caller())
		c.Next()
	}
}

// ParseToken decodes tokenString into Claims, checking the signature in verify mode.
func (m *AuthMiddleware) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if !m.verify {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrInvalidToken
		}
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return nil, ErrInvalidToken
		}
		if exp != nil && !time.Now().Before(exp.Time) {
			return nil, ErrExpiredToken
		}
		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func bearerToken(header string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// CallerFromContext returns the caller stored by Authenticate.
func CallerFromContext(c *gin.Context) (model.Caller, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return model.Caller{}, false
	}
	caller, ok := v.(model.Caller)
	return caller, ok
}
