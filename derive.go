package alfa

import (
	"fmt"
	"time"

	validation "github.com/jellydator/validation"
)

// Fields are the user-facing document values a Document keeps canonical.
type Fields struct {
	TypeCode         string
	AuthorityCode    string
	Number           string
	FullName         string
	NationalityCode  string
	BirthDate        time.Time
	GenderMarker     string
	ValidThru        time.Time
	OptionalData     string
	PassportNumber   string
	UsePassportInMRZ bool
}

func (f Fields) mrzFields() MRZFields {
	number := f.Number
	if f.UsePassportInMRZ {
		number = f.PassportNumber
	}
	return MRZFields{
		TypeCode:        f.TypeCode,
		AuthorityCode:   f.AuthorityCode,
		Number:          number,
		FullName:        f.FullName,
		NationalityCode: f.NationalityCode,
		BirthDate:       f.BirthDate,
		GenderMarker:    f.GenderMarker,
		ValidThru:       f.ValidThru,
		OptionalData:    f.OptionalData,
	}
}

// deriveForward renders the MRZ from f and mirrors it, the authority and
// the passport number into a copy of seal. seal is not modified.
func deriveForward(f Fields, seal Seal) (MRZ, Seal, error) {
	m, err := BuildMRZ(f.mrzFields())
	if err != nil {
		return MRZ{}, Seal{}, err
	}
	packed, err := EncodeMRZFeature(m)
	if err != nil {
		return MRZ{}, Seal{}, err
	}

	next := seal.Clone()
	next.Header.AuthorityCode = f.AuthorityCode
	if err := next.Features.Set(TagMRZ, packed); err != nil {
		return MRZ{}, Seal{}, err
	}

	if f.PassportNumber == "" {
		next.Features.Delete(TagPassportNumber)
	} else {
		pn, err := EncodeC40(f.PassportNumber)
		if err != nil {
			return MRZ{}, Seal{}, fmt.Errorf("passport number: %w", err)
		}
		if err := next.Features.Set(TagPassportNumber, pn); err != nil {
			return MRZ{}, Seal{}, err
		}
	}
	return m, next, nil
}

// deriveReverse rebuilds every field from seal. Fields the seal does not
// carry (the visa number while the passport number fills the MRZ) keep
// their value from prior.
func deriveReverse(seal Seal, prior Fields) (Fields, MRZ, error) {
	packed, ok := seal.Features.Get(TagMRZ)
	if !ok {
		return Fields{}, MRZ{}, fmt.Errorf("%w: %s", ErrMissingFeature, TagMRZ)
	}
	text, err := DecodeMRZFeature(packed)
	if err != nil {
		return Fields{}, MRZ{}, err
	}
	mf, err := ParseMRZ(text)
	if err != nil {
		return Fields{}, MRZ{}, err
	}

	m, err := BuildMRZ(mf)
	if err != nil {
		return Fields{}, MRZ{}, fmt.Errorf("mrz feature: %w", err)
	}
	if m.Text() != text {
		return Fields{}, MRZ{}, newFormatError("mrz", -1, "zone is not in canonical form")
	}
	if seal.Header.AuthorityCode != mf.AuthorityCode {
		return Fields{}, MRZ{}, newFormatError("header", -1,
			fmt.Sprintf("issuing country %q does not match MRZ authority %q", seal.Header.AuthorityCode, mf.AuthorityCode))
	}
	if err := validateImportedMRZ(mf); err != nil {
		return Fields{}, MRZ{}, err
	}
	if err := validateSealFeatures(&seal.Features); err != nil {
		return Fields{}, MRZ{}, err
	}

	f := Fields{
		TypeCode:        mf.TypeCode,
		AuthorityCode:   mf.AuthorityCode,
		Number:          mf.Number,
		FullName:        mf.FullName,
		NationalityCode: mf.NationalityCode,
		BirthDate:       mf.BirthDate,
		GenderMarker:    mf.GenderMarker,
		ValidThru:       mf.ValidThru,
		OptionalData:    mf.OptionalData,
	}
	if value, ok := seal.Features.Get(TagPassportNumber); ok {
		pn, err := DecodeC40(value)
		if err != nil {
			return Fields{}, MRZ{}, fmt.Errorf("passport number: %w", err)
		}
		if err := checkField("passportNumber", pn, pn,
			validation.Match(documentNumberPattern).Error("must be up to 9 characters 0-9, A-Z"),
		); err != nil {
			return Fields{}, MRZ{}, newFormatError("message", -1, err.Error())
		}
		f.PassportNumber = pn
		if pn != "" && pn == mf.Number {
			f.UsePassportInMRZ = true
			f.Number = prior.Number
		}
	}
	return f, m, nil
}

// validateImportedMRZ holds parsed MRZ values to the rules the field setters
// enforce. Empty values pass, matching a freshly created document.
func validateImportedMRZ(mf MRZFields) error {
	checks := []error{
		checkField("typeCode", mf.TypeCode, mf.TypeCode,
			validation.Match(typeCodePattern).Error("must be 1-2 letters A-Z")),
		checkField("authorityCode", mf.AuthorityCode, mf.AuthorityCode, countryCodeRule{}),
		checkField("nationalityCode", mf.NationalityCode, mf.NationalityCode, countryCodeRule{}),
		checkField("number", mf.Number, mf.Number,
			validation.Match(documentNumberPattern).Error("must be up to 9 characters 0-9, A-Z")),
	}
	for _, err := range checks {
		if err != nil {
			return newFormatError("mrz", -1, err.Error())
		}
	}
	return nil
}

// validateSealFeatures checks the seal-only features that have a fixed shape.
func validateSealFeatures(fs *Features) error {
	if v, ok := fs.Get(TagNumberOfEntries); ok {
		if _, err := decodeNumberOfEntries(v); err != nil {
			return err
		}
	}
	if v, ok := fs.Get(TagDurationOfStay); ok {
		if _, err := decodeDurationOfStay(v); err != nil {
			return err
		}
	}
	if v, ok := fs.Get(TagVisaType); ok {
		if _, err := DecodeVisaType(v); err != nil {
			return err
		}
	}
	return nil
}
