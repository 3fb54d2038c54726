// Package cryptox derives the login verifier from a password. The password
// never leaves the client: the server only stores the salt and the verifier.
package cryptox

import (
	"crypto/sha256"

	"github.com/dmitrijs2005/hopekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 32
	KeySize  = 32
)

// NewSalt returns a fresh random salt for registration.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveMasterKey stretches password with argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier is what the server compares on login.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// Verifier is DeriveMasterKey followed by MakeVerifier. The intermediate key
// is wiped before returning.
func Verifier(password []byte, salt []byte) []byte {
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}
