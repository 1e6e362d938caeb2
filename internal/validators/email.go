package validators

import "strings"

// NormalizeEmail is the single place emails are canonicalized before being
// stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmail(email string) bool {
	return engine.Var(email, "required,email") == nil
}
