package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// PasswordHasher puerto para derivar el hash que se almacena en users.csv.
type PasswordHasher interface {
	Hash(password string) string
}

// SHA256Hasher produce el digest SHA-256 en hex (64 caracteres), el formato
// fijo de la columna passwordHash.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
