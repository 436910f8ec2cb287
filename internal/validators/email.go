package validators

import "net/mail"

// IsValidEmail checks syntax only. The booking write path must not depend on
// DNS, so no MX/host lookups here.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
