package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"agile-exchange-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	userLocal        = "user"
	tokenLocal       = "token"
	tokenPrefix      = "auth_token:"
	userTokensPrefix = "user_tokens:"
	tokenTTL         = 24 * time.Hour
)

// AuthUser is the authenticated user attached to the request context.
// It is the explicit session object handlers read instead of ambient state.
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// RequireAuth resolves the bearer token against Redis and attaches the
// AuthUser to Locals. Missing, malformed or expired tokens get 401.
func RequireAuth(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, "Missing or invalid authorization header")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			return response.Unauthorized(c, "Missing or invalid authorization header")
		}

		b, err := rdb.Get(c.Context(), tokenPrefix+token).Bytes()
		if err == redis.Nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		if err != nil {
			return response.Internal(c)
		}
		var user AuthUser
		if err := json.Unmarshal(b, &user); err != nil || user.ID == "" {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals(userLocal, &user)
		c.Locals(tokenLocal, token)
		return c.Next()
	}
}

// GetUser returns the authenticated user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) *AuthUser {
	u, _ := c.Locals(userLocal).(*AuthUser)
	return u
}

// GetToken returns the raw bearer token for the current request.
func GetToken(c *fiber.Ctx) string {
	t, _ := c.Locals(tokenLocal).(string)
	return t
}

// IssueToken stores the user under a fresh token and returns it. Tokens
// are also tracked per user so they can all be revoked when the account
// is removed.
func IssueToken(ctx context.Context, rdb *redis.Client, user AuthUser) (string, error) {
	token := uuid.New().String()
	b, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	if err := rdb.Set(ctx, tokenPrefix+token, b, tokenTTL).Err(); err != nil {
		return "", err
	}
	if err := rdb.SAdd(ctx, userTokensPrefix+user.ID, token).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// RevokeToken deletes a token (logout).
func RevokeToken(ctx context.Context, rdb *redis.Client, token string) error {
	return rdb.Del(ctx, tokenPrefix+token).Err()
}

// RevokeUserTokens deletes every outstanding token for a user. Called when
// the account is removed so a deleted user cannot keep acting.
func RevokeUserTokens(ctx context.Context, rdb *redis.Client, userID string) error {
	tokens, err := rdb.SMembers(ctx, userTokensPrefix+userID).Result()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if err := rdb.Del(ctx, tokenPrefix+token).Err(); err != nil {
			return err
		}
	}
	return rdb.Del(ctx, userTokensPrefix+userID).Err()
}
