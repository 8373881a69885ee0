package normalize

import "golang.org/x/text/language"

// languageTag idioma usado por Title; las etiquetas del catálogo se generan en portugués.
var languageTag = language.BrazilianPortuguese
