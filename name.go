package alfa

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ICAO 9303-3 transliterations for letters that do not decompose to A-Z.
var nameSubstitutions = strings.NewReplacer(
	"ß", "SS",
	"Æ", "AE", "æ", "AE",
	"Ø", "OE", "ø", "OE",
	"Þ", "TH", "þ", "TH",
	"Œ", "OE", "œ", "OE",
	"Ĳ", "IJ", "ĳ", "IJ",
	"Đ", "D", "đ", "D",
	"Ł", "L", "ł", "L",
	"Ħ", "H", "ħ", "H",
	"ı", "I",
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// mrzName converts a "Primary, Secondary" name to MRZ form. When the name
// carries a "NonLatin/Latin" split only the Latin part is used.
func mrzName(fullName string) (string, error) {
	if i := strings.LastIndex(fullName, "/"); i >= 0 {
		fullName = fullName[i+1:]
	}

	primary, secondary, _ := strings.Cut(fullName, ",")
	p, err := mrzNamePart(primary)
	if err != nil {
		return "", err
	}
	s, err := mrzNamePart(secondary)
	if err != nil {
		return "", err
	}
	if s == "" {
		return p, nil
	}
	return p + "<<" + s, nil
}

func mrzNamePart(part string) (string, error) {
	latin, _, err := transform.String(stripMarks, nameSubstitutions.Replace(part))
	if err != nil {
		return "", newRangeError("fullName", part, "cannot be transliterated")
	}

	var sb strings.Builder
	filler := false
	for _, r := range strings.ToUpper(latin) {
		switch {
		case r >= 'A' && r <= 'Z':
			if filler && sb.Len() > 0 {
				sb.WriteByte('<')
			}
			filler = false
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '<':
			filler = true
		case r == '\'' || r == '.' || r == '’':
			// dropped
		default:
			return "", newRangeError("fullName", part, "contains characters that have no MRZ form")
		}
	}
	return sb.String(), nil
}

// fullNameFromMRZ reverses mrzName into "PRIMARY, SECONDARY".
func fullNameFromMRZ(field string) string {
	field = strings.TrimRight(field, "<")
	primary, secondary, found := strings.Cut(field, "<<")
	primary = strings.ReplaceAll(primary, "<", " ")
	if !found {
		return primary
	}
	secondary = strings.ReplaceAll(strings.Trim(secondary, "<"), "<", " ")
	return primary + ", " + secondary
}
