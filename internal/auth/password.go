package auth

import "golang.org/x/crypto/bcrypt"

// hashPassword returns the bcrypt hash of plain using the given cost.
func hashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verifyPassword compares a bcrypt hash and a plain password in constant
// time with respect to the hash contents.
func verifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
