package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ptBrConnectors = map[string]struct{}{
		"da": {}, "de": {}, "do": {}, "das": {}, "dos": {}, "e": {},
	}
	ptBrAcronyms = map[string]struct{}{
		"TI": {}, "RH": {},
	}
)

// strips spaces and collapses the inner ones
func CleanupString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCasePtBr title-cases s the way names read in pt-BR: connectors between
// words stay lower case and known acronyms stay upper case.
func TitleCasePtBr(s string) string {
	words := strings.Fields(s)
	caser := cases.Title(language.BrazilianPortuguese)
	for i, word := range words {
		if _, ok := ptBrAcronyms[strings.ToUpper(word)]; ok {
			words[i] = strings.ToUpper(word)
			continue
		}
		if _, ok := ptBrConnectors[strings.ToLower(word)]; ok && i > 0 && i < len(words)-1 {
			words[i] = strings.ToLower(word)
			continue
		}
		words[i] = caser.String(word)
	}
	return strings.Join(words, " ")
}
