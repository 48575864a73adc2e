package tools

import "regexp"

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func CheckPassword(password string) string {
	if len(password) < 6 {
		return "password"
	}
	return ""
}

// ValidateYear compara o ano informado com o mínimo vindo da configuração.
// O mínimo chega por parâmetro; nada aqui lê ambiente.
func ValidateYear(year, minimum int) bool {
	return year >= minimum
}
