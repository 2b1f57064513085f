package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"food-ordering-api/logging"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of an admin token.
const TokenTTL = time.Hour

const (
	ctxAdminID  = "adminID"
	ctxUsername = "username"
)

type Claims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies admin tokens with a secret injected at startup.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{Secret: secret, TTL: TokenTTL, Now: time.Now}
}

func (s *TokenService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// GenerateToken creates a signed JWT for the given admin
func (s *TokenService) GenerateToken(admin *models.Admin) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = TokenTTL
	}
	now := s.now()
	claims := Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ParseToken verifies signature, algorithm and expiry.
func (s *TokenService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthRequired rejects requests without a "Bearer <token>" header with 401
// and requests whose token does not verify with 403.
func (s *TokenService) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}

		claims, err := s.ParseToken(tokenStr)
		if err != nil {
			logging.FromContext(c.Request.Context()).Warn("token rejected", "error", err)
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ctxAdminID, claims.AdminID)
		c.Set(ctxUsername, claims.Username)
		l := logging.FromContext(c.Request.Context()).With("admin", claims.Username)
		c.Request = c.Request.WithContext(logging.IntoContext(c.Request.Context(), l))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// GetAdminID extracts the caller's admin ID from context
func GetAdminID(c *gin.Context) uint {
	return c.GetUint(ctxAdminID)
}

// GetUsername extracts the caller's username from context
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
