package token

import (
	"net/http"
	"os"
	"time"

	"go-absensi/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL adalah umur token sesuai kebijakan: 7 hari.
// Tidak ada revocation list; expiry adalah satu-satunya mekanisme invalidasi.
const DefaultTTL = 7 * 24 * time.Hour

var ErrInvalidToken = apperror.New(
	apperror.CodeUnauthorized,
	"invalid or expired token",
	http.StatusUnauthorized,
)

type Claims struct {
	UserID string
	Role   string
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func NewIssuerFromEnv() *Issuer {
	return NewIssuer(os.Getenv("JWT_SECRET"), DefaultTTL)
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Issue(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify gagal tertutup: signature mismatch, struktur rusak, expired,
// atau claim yang hilang semuanya menghasilkan ErrInvalidToken.
// Caller wajib memperlakukan error sebagai unauthenticated.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrInvalidToken
	}
	role, ok := mapClaims["role"].(string)
	if !ok || role == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: userID, Role: role}, nil
}
