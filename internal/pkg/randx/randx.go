/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is primarily used to mint the anonymous nicknames and personal codes handed to
participants on their first join, and UUID identifiers for internal entities.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// NicknameChars defines the character set used for the random part of a nickname (A-Z, a-z).
	NicknameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// CodeChars defines the character set used for personal codes (A-Z only).
	CodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// NicknamePrefix is the glyph prepended to every generated nickname.
	NicknamePrefix = "👤"

	// NicknameRandomLength is the number of random letters in a generated nickname.
	NicknameRandomLength = 6

	// CodePrefix marks a personal code so it is recognizable inside chat text.
	CodePrefix = "#"

	// CodeRandomLength is the number of random letters in a personal code.
	CodeRandomLength = 4
)

// pick returns length characters drawn from charset using crypto/rand.
func pick(charset string, length int) (string, error) {
	max := big.NewInt(int64(len(charset)))
	result := make([]byte, 0, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %v", err)
		}

		result = append(result, charset[num.Int64()])
	}

	return string(result), nil
}

// Nickname generates a random anonymous nickname: the glyph prefix followed by
// NicknameRandomLength random upper/lower-case letters.
func Nickname() (string, error) {
	tail, err := pick(NicknameChars, NicknameRandomLength)
	if err != nil {
		return "", err
	}

	return NicknamePrefix + tail, nil
}

// PersonalCode generates a random personal code of the form "#XXXX" with four
// uppercase letters. The code is minted once per identity and never changes.
func PersonalCode() (string, error) {
	tail, err := pick(CodeChars, CodeRandomLength)
	if err != nil {
		return "", err
	}

	return CodePrefix + tail, nil
}

// PollID generates a standard UUID v4 string to serve as the internal identifier of a poll.
func PollID() string {
	return uuid.New().String()
}

// IsValidPersonalCode checks if the given string has the shape of a personal code.
// The leading "#" is optional because participants frequently type codes without it.
func IsValidPersonalCode(code string) bool {
	raw := strings.TrimPrefix(code, CodePrefix)

	if len(raw) != CodeRandomLength {
		return false
	}

	for _, char := range strings.ToUpper(raw) {
		if !strings.ContainsRune(CodeChars, char) {
			return false
		}
	}

	return true
}
