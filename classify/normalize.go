package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduz um texto à forma usada em toda comparação do motor:
// minúsculas, sem acentos, sem espaços nas pontas. É a única normalização
// aplicada; nada dependente de locale entra aqui, para o resultado ser
// reprodutível bit a bit.
func Normalize(s string) string {
	// transformer novo por chamada: transform.Chain não é seguro para uso
	// concorrente e este pacote precisa ser.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
