package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended).
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashSecret creates an Argon2id hash encoded as
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>.
func HashSecret(secret string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory, argonTime, argonThreads, b64Salt, b64Hash), nil
}

// VerifySecret checks a secret against an encoded Argon2id hash using a
// constant-time comparison.
func VerifySecret(secret, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	got := argon2.IDKey([]byte(secret), salt, iterations, memory, uint8(threads), uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// Guard enforces Basic Auth for admin routes. A nil Guard lets everything
// through (local development without a secret file).
type Guard struct {
	user   string
	hash   string
	logger *log.Logger
}

// LoadSecretFile reads a "user:hash" secret file. A missing file returns a
// nil guard and a loud warning; admin routes then run unprotected.
func LoadSecretFile(path string, logger *log.Logger) (*Guard, error) {
	if logger == nil {
		logger = log.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("WARN: admin secret file %s not found, admin routes are UNPROTECTED", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read secret file: %w", err)
	}

	line := strings.TrimSpace(string(data))
	user, hash, ok := strings.Cut(line, ":")
	if !ok || user == "" || hash == "" {
		return nil, fmt.Errorf("invalid secret file format (expected user:hash)")
	}

	logger.Printf("admin auth enabled user=%s", user)
	return &Guard{user: user, hash: hash, logger: logger}, nil
}

// Middleware wraps admin handlers with Basic Auth. Safe to call on a nil
// guard: the handler runs unguarded.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	if g == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(g.user)) == 1
		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifySecret(pass, g.hash)
			if err != nil {
				g.logger.Printf("WARN: admin secret verify failed: %v", err)
				passMatch = false
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="Gig Fort Admin"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			g.logger.Printf("WARN: failed admin auth attempt from %s", r.RemoteAddr)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WriteSecretFile hashes the secret and writes a read-only "user:hash" file.
func WriteSecretFile(path, user, secret string) error {
	if user == "" || strings.Contains(user, ":") {
		return fmt.Errorf("invalid user")
	}
	hash, err := HashSecret(secret)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("%s:%s\n", user, hash)
	if err := os.WriteFile(path, []byte(content), 0o400); err != nil {
		return fmt.Errorf("write secret file: %w", err)
	}
	return nil
}
