package validators

import (
	"net/mail"
	"strings"
	"unicode"
)

// Contact field errors reported to the widget.
const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
)

// ContactProblems lists the contact fields that are missing or malformed.
// Name and phone are required; email is optional but must parse.
func ContactProblems(name, phone, email string) []string {
	var problems []string

	if strings.TrimSpace(name) == "" {
		problems = append(problems, FieldName)
	}
	if !IsPhoneValid(phone) {
		problems = append(problems, FieldPhone)
	}
	if email = strings.TrimSpace(email); email != "" && !IsEmailSyntaxValid(email) {
		problems = append(problems, FieldEmail)
	}

	return problems
}

func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// IsPhoneValid accepts digits with common separators and an optional
// leading plus, between 6 and 15 digits.
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= 6 && digits <= 15
}
