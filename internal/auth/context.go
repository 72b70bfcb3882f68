// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

type contextKey string

const userIDKey = contextKey("userID")

var ErrNoUser = errors.New("user ID not found in context")

// WithUserID stores the authenticated user's id in the context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithoutUser makes the request anonymous again, for sessions whose user no longer exists.
func WithoutUser(ctx context.Context) context.Context {
	return context.WithValue(ctx, userIDKey, nil)
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(uint)
	if !ok {
		return 0, ErrNoUser
	}
	return id, nil
}

// TokenIssuer signs session tokens.
type TokenIssuer struct {
	Secret string
	TTL    time.Duration
}

func (i TokenIssuer) Issue(userID uint, username string) (string, error) {
	if i.Secret == "" {
		return "", errors.New("JWT secret is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(i.TTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(i.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// AuthMiddleware puts the user id from a valid session token into the request context.
// Requests without a token, or with an invalid one, continue anonymously.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			if secret == "" {
				http.Error(w, "JWT secret not set", http.StatusInternalServerError)
				return
			}

			userID, err := parseToken(secret, tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			r = r.WithContext(WithUserID(r.Context(), userID))
			next.ServeHTTP(w, r)
		})
	}
}

func parseToken(secret, tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	idFloat, ok := claims["user_id"].(float64)
	if !ok || idFloat <= 0 {
		return 0, errors.New("user_id claim is missing")
	}
	return uint(idFloat), nil
}

// extractToken prefers the Authorization header and falls back to the session cookie.
func extractToken(r *http.Request) string {
	if token := extractTokenFromHeader(r.Header.Get("Authorization")); token != "" {
		return token
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
