// Package cryptox wraps the password hashing used by the API server.
package cryptox

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

var ErrPasswordTooLong = errors.New("password longer than 72 bytes")

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	h, err := bcrypt.GenerateFromPassword(password, Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// BurnCompare spends the same time as a real CheckPassword call. Login calls
// it for unknown users so response times do not reveal which logins exist.
func BurnCompare(password []byte) {
	dummyOnce.Do(func() {
		h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), Cost)
		dummyHash = string(h)
	})
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), password)
}
