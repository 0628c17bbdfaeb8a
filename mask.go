package alfa

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// MaskType names a masking rule usable in `send.mask` tags.
type MaskType string

const (
	MaskName   MaskType = "name"   // ERIKSSON, ANNA MARIA -> E*******, A*** M****
	MaskNumber MaskType = "number" // T32069231 -> ******231
	MaskDate   MaskType = "date"   // 1974-08-12 -> 1974-**-**
	MaskUUID   MaskType = "uuid"   // 550e8400-e29b-... -> 550e8400-****-****-****-************
)

// Masker applies content-aware masking.
type Masker interface {
	Mask(value string) string
}

// nameMasker keeps the first letter of each name component.
type nameMasker struct{}

// NameMasker returns a masker for "Primary, Secondary" names.
func NameMasker() Masker {
	return &nameMasker{}
}

func (m *nameMasker) Mask(value string) string {
	var sb strings.Builder
	first := true
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) && first:
			sb.WriteRune(r)
			first = false
		case unicode.IsLetter(r):
			sb.WriteByte('*')
		default:
			sb.WriteRune(r)
			first = true
		}
	}
	return sb.String()
}

// numberMasker keeps the last three characters of a document number.
type numberMasker struct{}

// NumberMasker returns a masker for document and passport numbers.
func NumberMasker() Masker {
	return &numberMasker{}
}

func (m *numberMasker) Mask(value string) string {
	if len(value) <= 3 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-3) + value[len(value)-3:]
}

// dateMasker keeps the year of an ISO date.
type dateMasker struct{}

// DateMasker returns a masker for YYYY-MM-DD dates.
func DateMasker() Masker {
	return &dateMasker{}
}

func (m *dateMasker) Mask(value string) string {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return strings.Repeat("*", len(value))
	}
	return t.Format("2006") + "-**-**"
}

// uuidMasker keeps the first group of a UUID.
type uuidMasker struct{}

// UUIDMasker returns a masker for record identifiers.
func UUIDMasker() Masker {
	return &uuidMasker{}
}

func (m *uuidMasker) Mask(value string) string {
	id, err := uuid.Parse(value)
	if err != nil {
		return strings.Repeat("*", len(value))
	}
	return id.String()[:8] + "-****-****-****-************"
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskName:   NameMasker(),
		MaskNumber: NumberMasker(),
		MaskDate:   DateMasker(),
		MaskUUID:   UUIDMasker(),
	}
}
