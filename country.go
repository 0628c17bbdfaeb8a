package alfa

import (
	"golang.org/x/text/language"
)

// Three-letter codes ICAO 9303-3 assigns outside ISO 3166-1.
var icaoCodes = map[string]bool{
	"EUE": true, // European Union
	"GBD": true, // British Overseas Territories Citizen
	"GBN": true, // British National (Overseas)
	"GBO": true, // British Overseas Citizen
	"GBP": true, // British Protected Person
	"GBS": true, // British Subject
	"RKS": true, // Kosovo
	"UNA": true, // United Nations specialized agency
	"UNK": true, // UN interim administration in Kosovo
	"UNO": true, // United Nations
	"UTO": true, // Utopia, the ICAO specimen state
}

// IsCountryCode reports whether code may appear as an issuing authority or
// nationality: an ISO 3166-1 alpha-3 country, an ICAO-assigned code, or one
// of the user-assigned ranges AAA-AAZ, QMA-QZZ, XAA-XZZ, ZZA-ZZZ.
func IsCountryCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	if isReservedCountryCode(code) || icaoCodes[code] {
		return true
	}
	region, err := language.ParseRegion(code)
	return err == nil && region.IsCountry()
}

func isReservedCountryCode(code string) bool {
	switch {
	case code[0] == 'A' && code[1] == 'A':
		return true
	case code[0] == 'Q' && code[1] >= 'M':
		return true
	case code[0] == 'X':
		return true
	case code[0] == 'Z' && code[1] == 'Z':
		return true
	}
	return false
}
