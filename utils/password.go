package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// passwordConfig is argon2id with the library's recommended defaults. The
// encoded hash records its own parameters, so tuning this later does not
// invalidate hashes already in the users table.
var passwordConfig = argon2.DefaultConfig()

func HashPassword(password string) (string, error) {
	encoded, err := passwordConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
