package alfa

import (
	"strconv"
	"strings"
	"time"
)

// MRV-B layout widths (ICAO 9303-7).
const (
	MRZLineLength = 36
	MRZLength     = 2 * MRZLineLength

	mrzTypeWidth     = 2
	mrzNameWidth     = 31
	mrzNumberWidth   = 9
	mrzDateWidth     = 6
	mrzOptionalWidth = 8
	mrzDateLayout    = "060102"
)

// MRZFields are the document values carried by an MRV-B machine-readable zone.
type MRZFields struct {
	TypeCode        string
	AuthorityCode   string
	Number          string
	FullName        string
	NationalityCode string
	BirthDate       time.Time
	GenderMarker    string
	ValidThru       time.Time
	OptionalData    string
}

// MRZ is a two-line MRV-B machine-readable zone.
type MRZ struct {
	Line1 string
	Line2 string
}

// Text returns both lines concatenated without a separator (72 characters).
func (m MRZ) Text() string {
	return m.Line1 + m.Line2
}

// String returns the lines separated by a newline, as printed.
func (m MRZ) String() string {
	return m.Line1 + "\n" + m.Line2
}

// BuildMRZ renders f as an MRV-B zone. Fields that do not fit their
// positions are rejected with a *RangeError; nothing is truncated.
func BuildMRZ(f MRZFields) (MRZ, error) {
	name, err := mrzName(f.FullName)
	if err != nil {
		return MRZ{}, err
	}
	if len(name) > mrzNameWidth {
		return MRZ{}, newRangeError("fullName", f.FullName, "does not fit the "+strconv.Itoa(mrzNameWidth)+" character name field")
	}
	if len(f.TypeCode) > mrzTypeWidth {
		return MRZ{}, newRangeError("typeCode", f.TypeCode, "longer than 2 characters")
	}
	if len(f.AuthorityCode) > 3 {
		return MRZ{}, newRangeError("authorityCode", f.AuthorityCode, "longer than 3 characters")
	}
	if len(f.NationalityCode) > 3 {
		return MRZ{}, newRangeError("nationalityCode", f.NationalityCode, "longer than 3 characters")
	}
	if len(f.Number) > mrzNumberWidth {
		return MRZ{}, newRangeError("number", f.Number, "longer than 9 characters")
	}
	optional := strings.ReplaceAll(f.OptionalData, " ", "<")
	if len(optional) > mrzOptionalWidth {
		return MRZ{}, newRangeError("optionalData", f.OptionalData, "longer than the 8 characters an MRV-B zone carries")
	}

	gender, err := mrzGender(f.GenderMarker)
	if err != nil {
		return MRZ{}, err
	}
	if err := checkMRZCenturies(f.BirthDate, f.ValidThru); err != nil {
		return MRZ{}, err
	}

	number := padMRZ(f.Number, mrzNumberWidth)
	birth := mrzDate(f.BirthDate)
	validThru := mrzDate(f.ValidThru)

	numberDigit, err := CheckDigit(number)
	if err != nil {
		return MRZ{}, err
	}
	birthDigit, _ := CheckDigit(birth)
	validThruDigit, _ := CheckDigit(validThru)

	var l1 strings.Builder
	l1.Grow(MRZLineLength)
	l1.WriteString(padMRZ(f.TypeCode, mrzTypeWidth))
	l1.WriteString(padMRZ(f.AuthorityCode, 3))
	l1.WriteString(padMRZ(name, mrzNameWidth))

	var l2 strings.Builder
	l2.Grow(MRZLineLength)
	l2.WriteString(number)
	l2.WriteByte(byte('0' + numberDigit))
	l2.WriteString(padMRZ(f.NationalityCode, 3))
	l2.WriteString(birth)
	l2.WriteByte(byte('0' + birthDigit))
	l2.WriteByte(gender)
	l2.WriteString(validThru)
	l2.WriteByte(byte('0' + validThruDigit))
	l2.WriteString(padMRZ(optional, mrzOptionalWidth))

	m := MRZ{Line1: l1.String(), Line2: l2.String()}
	if err := checkMRZCharset(m.Text()); err != nil {
		return MRZ{}, err
	}
	return m, nil
}

// ParseMRZ reads an MRV-B zone, given either as 72 characters or as two
// newline-separated lines, and verifies all three check digits.
func ParseMRZ(text string) (MRZFields, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r", "")
	text = strings.ReplaceAll(text, "\n", "")
	if len(text) != MRZLength {
		return MRZFields{}, newFormatError("mrz", -1, "expected "+strconv.Itoa(MRZLength)+" characters, got "+strconv.Itoa(len(text)))
	}
	if err := checkMRZCharset(text); err != nil {
		return MRZFields{}, err
	}

	l1, l2 := text[:MRZLineLength], text[MRZLineLength:]

	number := l2[0:9]
	birth := l2[13:19]
	validThru := l2[21:27]
	if err := VerifyCheckDigit("number", number, l2[9]); err != nil {
		return MRZFields{}, err
	}
	if err := VerifyCheckDigit("birthDate", birth, l2[19]); err != nil {
		return MRZFields{}, err
	}
	if err := VerifyCheckDigit("validThru", validThru, l2[27]); err != nil {
		return MRZFields{}, err
	}

	validThruDate, err := parseMRZDate(validThru, 36+21, expiryYear)
	if err != nil {
		return MRZFields{}, err
	}
	birthDate, err := parseMRZDate(birth, 36+13, birthYear(validThruDate))
	if err != nil {
		return MRZFields{}, err
	}

	var gender string
	switch l2[20] {
	case 'F', 'M':
		gender = string(l2[20])
	case '<':
		gender = "X"
	default:
		return MRZFields{}, newFormatError("mrz", 36+20, "invalid sex marker")
	}

	return MRZFields{
		TypeCode:        unpadMRZ(l1[0:2]),
		AuthorityCode:   unpadMRZ(l1[2:5]),
		FullName:        fullNameFromMRZ(l1[5:]),
		Number:          unpadMRZ(number),
		NationalityCode: unpadMRZ(l2[10:13]),
		BirthDate:       birthDate,
		GenderMarker:    gender,
		ValidThru:       validThruDate,
		OptionalData:    strings.ReplaceAll(unpadMRZ(l2[28:36]), "<", " "),
	}, nil
}

func padMRZ(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("<", width-len(s))
}

func unpadMRZ(s string) string {
	return strings.TrimRight(s, "<")
}

func mrzGender(marker string) (byte, error) {
	switch marker {
	case "F", "M":
		return marker[0], nil
	case "X", "":
		return '<', nil
	}
	return 0, newRangeError("genderMarker", marker, "must be F, M or X")
}

func mrzDate(t time.Time) string {
	if t.IsZero() {
		return strings.Repeat("<", mrzDateWidth)
	}
	return t.Format(mrzDateLayout)
}

// expiryYear places a two-digit expiry year in 20YY.
func expiryYear(yy, _, _ int) int {
	return 2000 + yy
}

// birthYear places a two-digit birth year in 20YY unless that falls after
// notAfter, then in 19YY. Without a reference it uses 19YY.
func birthYear(notAfter time.Time) func(yy, mm, dd int) int {
	return func(yy, mm, dd int) int {
		if notAfter.IsZero() {
			return 1900 + yy
		}
		if time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC).After(notAfter) {
			return 1900 + yy
		}
		return 2000 + yy
	}
}

// checkMRZCenturies rejects dates whose two-digit years ParseMRZ would place
// in a different century.
func checkMRZCenturies(birth, validThru time.Time) error {
	if !validThru.IsZero() {
		if y := validThru.Year(); y < 2000 || y > 2099 {
			return newRangeError("validThru", validThru.Format(time.DateOnly), "year must be in 2000-2099")
		}
	}
	if birth.IsZero() {
		return nil
	}
	y, m, d := birth.Date()
	if y < 1900 || y > 2099 {
		return newRangeError("birthDate", birth.Format(time.DateOnly), "year must be in 1900-2099")
	}
	if birthYear(validThru)(y%100, int(m), d) != y {
		if validThru.IsZero() {
			return newRangeError("birthDate", birth.Format(time.DateOnly), "a 20YY birth year needs validThru set first")
		}
		return newRangeError("birthDate", birth.Format(time.DateOnly),
			"century cannot be recovered against validThru "+validThru.Format(time.DateOnly))
	}
	return nil
}

// parseMRZDate reads YYMMDD; an all-filler date is the zero time.
func parseMRZDate(s string, offset int, century func(yy, mm, dd int) int) (time.Time, error) {
	if s == strings.Repeat("<", mrzDateWidth) {
		return time.Time{}, nil
	}
	yy, err1 := strconv.Atoi(s[0:2])
	mm, err2 := strconv.Atoi(s[2:4])
	dd, err3 := strconv.Atoi(s[4:6])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, newFormatError("mrz", offset, "date is not YYMMDD")
	}

	t := time.Date(century(yy, mm, dd), time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(mm) || t.Day() != dd {
		return time.Time{}, newFormatError("mrz", offset, "date does not exist")
	}
	return t, nil
}

func checkMRZCharset(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '<' {
			continue
		}
		return newFormatError("mrz", i, "character outside A-Z, 0-9 and '<'")
	}
	return nil
}
