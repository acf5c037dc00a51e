package settings

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold descompone (NFKD) y elimina marcas diacríticas: "Logó Año" -> "Logo Ano".
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SecureFilename devuelve un nombre de archivo seguro para guardar en disco:
// solo ASCII [A-Za-z0-9._-], sin separadores de ruta ni puntos iniciales.
// Devuelve "" si no queda nada utilizable.
func SecureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), "._")
	if out == "" || out == "." || out == ".." {
		return ""
	}
	return out
}
