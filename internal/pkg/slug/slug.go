// Package slug deriva identificadores de URL a partir de nomes de exibição.
//
// A regra é: remover espaços nas pontas, converter para minúsculas e trocar
// cada sequência de espaços por um hífen. Acentos e pontuação são mantidos,
// então "Ação & Aventura" vira "ação-&-aventura".
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Make deriva o slug de um nome.
func Make(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Unique devolve base, ou base-2, base-3... o primeiro que taken não reconhece.
func Unique(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}
