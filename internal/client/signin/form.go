package signin

import "regexp"

var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// ValidEmail reports whether s looks like name@host.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// FormValid reports whether the form may be submitted.
func FormValid(email, password string) bool {
	return ValidEmail(email) && password != ""
}
