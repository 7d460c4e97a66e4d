package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/config"
	"github.com/arnavshah/seatplan-api/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	jwtSecret       []byte
	apiMasterSecret []byte
	adminUsername   = "admin"
	adminPassword   = "admin123"
	bcryptCost      = 14
)

var jwtAlgorithm = jwt.SigningMethodHS256

// Init installs the secrets and admin defaults from the configuration
func Init(cfg config.Config) {
	jwtSecret = []byte(cfg.JWTSecret)
	apiMasterSecret = []byte(cfg.APIMasterSecret)
	if cfg.AdminUsername != "" {
		adminUsername = cfg.AdminUsername
	}
	if cfg.AdminPassword != "" {
		adminPassword = cfg.AdminPassword
	}
}

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for a user
func CreateToken(username string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(jwtSecret)
}

// VerifyToken verifies a JWT token
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// EnsureAdminExists creates the configured admin user when no admin exists yet
func EnsureAdminExists(db *gorm.DB) error {
	var count int64
	if err := db.Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(adminPassword)
	if err != nil {
		return err
	}

	user := database.MasterUser{
		Username:     adminUsername,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("default admin user created: %s", adminUsername)
	return nil
}

func sign(name string, secret []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(name))
	return hex.EncodeToString(h.Sum(nil))
}

// SignKey creates an API key for name signed with secret
func SignKey(name string, secret []byte) string {
	return name + "." + sign(name, secret)
}

// GenerateHMACKey creates a signed API key using HMAC-SHA256
func GenerateHMACKey(name string) string {
	return SignKey(name, apiMasterSecret)
}

// VerifyHMACKey validates an HMAC-signed API key and returns the client name
func VerifyHMACKey(key string) (string, error) {
	idx := strings.LastIndex(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return "", errors.New("invalid key format")
	}

	name := key[:idx]
	providedSignature := key[idx+1:]
	expectedSignature := sign(name, apiMasterSecret)

	// Use constant-time comparison to prevent timing attacks
	if !hmac.Equal([]byte(providedSignature), []byte(expectedSignature)) {
		return "", errors.New("invalid signature")
	}

	return name, nil
}
