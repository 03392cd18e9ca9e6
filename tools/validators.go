package tools

import "regexp"

func ValidateEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// CheckPassword returns the offending field name when the password is too
// weak, empty string when it's fine.
func CheckPassword(password string) string {
	if len(password) < 6 {
		return "password"
	}
	return ""
}
