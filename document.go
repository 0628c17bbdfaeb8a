package alfa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
)

// Document keeps the identity fields, the MRZ and the visa seal consistent.
//
// Every field setter re-derives the MRZ and seal feature 0x02 before it
// returns; a failed setter leaves the document untouched. Whole-zone setters
// reparse the seal and overwrite every field, again all or nothing.
//
// A Document is not safe for concurrent mutation. Callers serialize writers.
type Document struct {
	id     uuid.UUID
	fields Fields
	mrz    MRZ
	seal   Seal
	url    string
	hash   HashAlgo
}

// Fields returns a copy of the current field values.
func (d *Document) Fields() Fields { return d.fields }

// MRZ returns the machine-readable zone derived from the fields.
func (d *Document) MRZ() MRZ { return d.mrz }

// Seal returns a deep copy of the seal.
func (d *Document) Seal() Seal { return d.seal.Clone() }

// TypeCode returns the document type, "V" for a visa.
func (d *Document) TypeCode() string { return d.fields.TypeCode }

// AuthorityCode returns the issuing state, mirrored in the seal header.
func (d *Document) AuthorityCode() string { return d.fields.AuthorityCode }

// Number returns the visa number.
func (d *Document) Number() string { return d.fields.Number }

// FullName returns the holder's name as last set or as read back from the MRZ.
func (d *Document) FullName() string { return d.fields.FullName }

// NationalityCode returns the holder's nationality.
func (d *Document) NationalityCode() string { return d.fields.NationalityCode }

// BirthDate returns the date of birth, zero when unknown.
func (d *Document) BirthDate() time.Time { return d.fields.BirthDate }

// GenderMarker returns F, M, X or "" when unset.
func (d *Document) GenderMarker() string { return d.fields.GenderMarker }

// ValidThru returns the expiry date, zero when unset.
func (d *Document) ValidThru() time.Time { return d.fields.ValidThru }

// OptionalData returns the optional data element.
func (d *Document) OptionalData() string { return d.fields.OptionalData }

// PassportNumber returns the number carried in seal feature 0x05.
func (d *Document) PassportNumber() string { return d.fields.PassportNumber }

// UsePassportInMRZ reports whether the passport number fills the MRZ.
func (d *Document) UsePassportInMRZ() bool { return d.fields.UsePassportInMRZ }

// URL returns the link rendered in BarcodeURL mode.
func (d *Document) URL() string { return d.url }

// update applies mutate to a copy of the fields, derives the MRZ and seal
// from the result and commits all three only if every step succeeds.
func (d *Document) update(mutate func(f *Fields) error) error {
	next := d.fields
	if err := mutate(&next); err != nil {
		return err
	}
	m, seal, err := deriveForward(next, d.seal)
	if err != nil {
		return err
	}
	d.fields, d.mrz, d.seal = next, m, seal
	emitMRZDerived(context.Background(), next.AuthorityCode, next.mrzFields().Number)
	return nil
}

// updateSeal applies mutate to a copy of the seal and commits on success.
func (d *Document) updateSeal(mutate func(s *Seal) error) error {
	next := d.seal.Clone()
	if err := mutate(&next); err != nil {
		return err
	}
	d.seal = next
	return nil
}

// importSeal runs the reverse derivation over seal and commits on success.
func (d *Document) importSeal(seal Seal) error {
	ctx := context.Background()
	f, m, err := deriveReverse(seal, d.fields)
	if err != nil {
		emitSealImportFailed(ctx, err)
		return err
	}
	d.fields, d.mrz, d.seal = f, m, seal
	emitSealImported(ctx, f.AuthorityCode, f.mrzFields().Number, seal.Features.Len())
	return nil
}

// SetTypeCode sets the one or two letter document type, "V" for a visa.
func (d *Document) SetTypeCode(code string) error {
	if err := checkField("typeCode", code, code,
		validation.Required,
		validation.Match(typeCodePattern).Error("must be 1-2 letters A-Z"),
	); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.TypeCode = code
		return nil
	})
}

// SetAuthorityCode sets the issuing state. The seal header mirrors it.
func (d *Document) SetAuthorityCode(code string) error {
	if err := checkField("authorityCode", code, code, validation.Required, countryCodeRule{}); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.AuthorityCode = code
		return nil
	})
}

// SetNumber sets the visa number.
func (d *Document) SetNumber(number string) error {
	if err := checkField("number", number, number,
		validation.Match(documentNumberPattern).Error("must be up to 9 characters 0-9, A-Z"),
	); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.Number = number
		return nil
	})
}

// SetFullName sets the holder's name as "Primary, Secondary", optionally
// prefixed by a non-Latin form and "/".
func (d *Document) SetFullName(name string) error {
	return d.update(func(f *Fields) error {
		f.FullName = name
		return nil
	})
}

// SetNationalityCode sets the holder's nationality.
func (d *Document) SetNationalityCode(code string) error {
	if err := checkField("nationalityCode", code, code, validation.Required, countryCodeRule{}); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.NationalityCode = code
		return nil
	})
}

// SetBirthDate sets the date of birth; the clock part is dropped. A zero
// time renders as an unknown date. The two-digit MRZ year must read back in
// the same century against ValidThru, so set ValidThru first for a 20YY birth.
func (d *Document) SetBirthDate(t time.Time) error {
	return d.update(func(f *Fields) error {
		f.BirthDate = dateOnly(t)
		return nil
	})
}

// SetGenderMarker sets F, M or X.
func (d *Document) SetGenderMarker(marker string) error {
	if err := checkField("genderMarker", marker, marker,
		validation.Required,
		validation.In("F", "M", "X").Error("must be F, M or X"),
	); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.GenderMarker = marker
		return nil
	})
}

// SetValidThru sets the expiry date; the clock part is dropped.
func (d *Document) SetValidThru(t time.Time) error {
	t = dateOnly(t)
	if err := checkField("validThru", t, t.Format(time.DateOnly), mrzYearRule{}); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.ValidThru = t
		return nil
	})
}

// SetOptionalData sets the optional data element. The MRV-B zone holds
// eight of the sixteen characters the field allows, so longer values are
// rejected by the derivation.
func (d *Document) SetOptionalData(data string) error {
	if err := checkField("optionalData", data, data,
		validation.Match(optionalDataPattern).Error("must be up to 16 characters 0-9, A-Z or space"),
	); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.OptionalData = data
		return nil
	})
}

// SetPassportNumber sets the number of the passport the visa is placed in.
// It is carried in seal feature 0x05 and, when UsePassportInMRZ is set,
// replaces the visa number in the MRZ.
func (d *Document) SetPassportNumber(number string) error {
	if err := checkField("passportNumber", number, number,
		validation.Match(documentNumberPattern).Error("must be up to 9 characters 0-9, A-Z"),
	); err != nil {
		return err
	}
	return d.update(func(f *Fields) error {
		f.PassportNumber = number
		return nil
	})
}

// SetUsePassportInMRZ selects which number feeds the MRZ.
func (d *Document) SetUsePassportInMRZ(use bool) error {
	return d.update(func(f *Fields) error {
		f.UsePassportInMRZ = use
		return nil
	})
}

// NumberOfEntries returns feature 0x03.
func (d *Document) NumberOfEntries() (int, bool) {
	v, ok := d.seal.Features.Get(TagNumberOfEntries)
	if !ok {
		return 0, false
	}
	n, err := decodeNumberOfEntries(v)
	return n, err == nil
}

// SetNumberOfEntries sets feature 0x03; 0 means unlimited entries.
func (d *Document) SetNumberOfEntries(n int) error {
	if err := checkField("numberOfEntries", n, fmt.Sprint(n), validation.Min(0), validation.Max(255)); err != nil {
		return err
	}
	return d.updateSeal(func(s *Seal) error {
		return s.Features.Set(TagNumberOfEntries, []byte{byte(n)})
	})
}

// DurationOfStay returns feature 0x04.
func (d *Document) DurationOfStay() (DurationOfStay, bool) {
	v, ok := d.seal.Features.Get(TagDurationOfStay)
	if !ok {
		return DurationOfStay{}, false
	}
	dur, err := decodeDurationOfStay(v)
	return dur, err == nil
}

// SetDurationOfStay sets feature 0x04. Each component must be in 0-254.
func (d *Document) SetDurationOfStay(dur DurationOfStay) error {
	if err := dur.Validate(); err != nil {
		return err
	}
	return d.updateSeal(func(s *Seal) error {
		return s.Features.Set(TagDurationOfStay, dur.bytes())
	})
}

// VisaTypeCode returns feature 0x06 as hex, or "" when absent.
func (d *Document) VisaTypeCode() string {
	v, ok := d.seal.Features.Get(TagVisaType)
	if !ok {
		return ""
	}
	code, _ := DecodeVisaType(v)
	return code
}

// SetVisaTypeCode sets feature 0x06 from up to 8 hex characters.
func (d *Document) SetVisaTypeCode(code string) error {
	if err := checkField("visaTypeCode", code, code,
		validation.Required,
		validation.Match(visaTypePattern).Error("must be 1-8 hex characters"),
	); err != nil {
		return err
	}
	value, err := EncodeVisaType(code)
	if err != nil {
		return err
	}
	return d.updateSeal(func(s *Seal) error {
		return s.Features.Set(TagVisaType, value)
	})
}

// AdditionalFeature returns feature 0x07.
func (d *Document) AdditionalFeature() ([]byte, bool) {
	return d.seal.Features.Get(TagAdditionalFeature)
}

// SetAdditionalFeature sets feature 0x07 to opaque bytes.
func (d *Document) SetAdditionalFeature(value []byte) error {
	return d.SetFeature(TagAdditionalFeature, value)
}

// Feature returns the raw value of any message zone feature.
func (d *Document) Feature(tag Tag) ([]byte, bool) {
	return d.seal.Features.Get(tag)
}

// SetFeature stores a raw feature. Tags derived from the fields or with a
// fixed shape must go through their own setters.
func (d *Document) SetFeature(tag Tag, value []byte) error {
	switch tag {
	case TagMRZ, TagPassportNumber, TagNumberOfEntries, TagDurationOfStay, TagVisaType:
		return newRangeError("tag", tag.String(), "has a dedicated setter")
	}
	return d.updateSeal(func(s *Seal) error {
		return s.Features.Set(tag, value)
	})
}

// RemoveFeature deletes a seal-only feature.
func (d *Document) RemoveFeature(tag Tag) error {
	switch tag {
	case TagMRZ, TagPassportNumber:
		return newRangeError("tag", tag.String(), "is derived from the document fields")
	}
	return d.updateSeal(func(s *Seal) error {
		s.Features.Delete(tag)
		return nil
	})
}

// SealVersion returns the header layout in use.
func (d *Document) SealVersion() SealVersion { return d.seal.Header.Version }

// IdentifierCode returns the four character signer identifier.
func (d *Document) IdentifierCode() string { return d.seal.Header.IdentifierCode }

// CertReference returns the signer certificate reference as hex.
func (d *Document) CertReference() string { return d.seal.Header.CertReference }

// IssueDate returns the header issue date.
func (d *Document) IssueDate() time.Time { return d.seal.Header.IssueDate }

// SignatureDate returns the header signature date.
func (d *Document) SignatureDate() time.Time { return d.seal.Header.SignatureDate }

// Signature returns a copy of the raw signature bytes, nil when unsigned.
func (d *Document) Signature() []byte { return append([]byte(nil), d.seal.Signature...) }

// SetSealVersion switches the header layout. The certificate reference
// must fit the new layout.
func (d *Document) SetSealVersion(v SealVersion) error {
	if v != SealVersion3 && v != SealVersion4 {
		return newRangeError("sealVersion", v.String(), "must be 3 or 4")
	}
	if err := checkCertReference(v, d.seal.Header.CertReference); err != nil {
		return err
	}
	return d.updateSeal(func(s *Seal) error {
		s.Header.Version = v
		return nil
	})
}

// SetIdentifierCode sets the four character signer identifier.
func (d *Document) SetIdentifierCode(code string) error {
	if err := checkField("identifierCode", code, code,
		validation.Required,
		validation.Match(identifierCodePattern).Error("must be 4 characters 0-9, A-Z"),
	); err != nil {
		return err
	}
	return d.updateSeal(func(s *Seal) error {
		s.Header.IdentifierCode = code
		return nil
	})
}

// SetCertReference sets the signer certificate reference as hex.
func (d *Document) SetCertReference(ref string) error {
	ref = strings.ToUpper(ref)
	if err := checkCertReference(d.seal.Header.Version, ref); err != nil {
		return err
	}
	return d.updateSeal(func(s *Seal) error {
		s.Header.CertReference = ref
		return nil
	})
}

func checkCertReference(v SealVersion, ref string) error {
	if ref == "" {
		return nil
	}
	length := validation.Length(1, 255).Error("must be 1-255 hex characters in a version 4 header")
	if v == SealVersion3 {
		length = validation.Length(certReferenceV3Length, certReferenceV3Length).Error("must be 5 hex characters in a version 3 header")
	}
	return checkField("certReference", ref, ref,
		validation.Match(hexPattern).Error("must be hex"),
		length,
	)
}

// SetIssueDate sets the header issue date; the clock part is dropped.
func (d *Document) SetIssueDate(t time.Time) error {
	if t.IsZero() {
		return newRangeError("issueDate", "", "is not set")
	}
	return d.updateSeal(func(s *Seal) error {
		s.Header.IssueDate = dateOnly(t)
		return nil
	})
}

// SetSignatureDate sets the header signature date; the clock part is dropped.
func (d *Document) SetSignatureDate(t time.Time) error {
	if t.IsZero() {
		return newRangeError("signatureDate", "", "is not set")
	}
	return d.updateSeal(func(s *Seal) error {
		s.Header.SignatureDate = dateOnly(t)
		return nil
	})
}

// SetSignature stores raw signature bytes. An empty signature removes the
// signature zone.
func (d *Document) SetSignature(sig []byte) error {
	if len(sig) > maxBERLength {
		return newRangeError("signature", "", "does not fit a 3-byte length")
	}
	return d.updateSeal(func(s *Seal) error {
		s.Signature = append([]byte(nil), sig...)
		return nil
	})
}

// HeaderZone serializes the header.
func (d *Document) HeaderZone() ([]byte, error) {
	return d.seal.HeaderZone()
}

// MessageZone serializes the features.
func (d *Document) MessageZone() []byte {
	return d.seal.MessageZone()
}

// SignatureZone frames the signature, empty when unsigned.
func (d *Document) SignatureZone() []byte {
	return d.seal.SignatureZone()
}

// UnsignedSeal returns header ++ message.
func (d *Document) UnsignedSeal() ([]byte, error) {
	return d.seal.Unsigned()
}

// SignedSeal returns header ++ message ++ signature.
func (d *Document) SignedSeal() ([]byte, error) {
	return d.seal.Encode()
}

// SetSignatureZone parses a framed signature and stores it.
func (d *Document) SetSignatureZone(zone []byte) error {
	sig, err := DecodeSignature(zone)
	if err != nil {
		return err
	}
	return d.SetSignature(sig)
}

// SetHeaderZone replaces the header. Its issuing country becomes the
// authority code, so the MRZ and feature 0x02 are re-derived to match.
func (d *Document) SetHeaderZone(zone []byte) error {
	ctx := context.Background()
	h, n, err := DecodeHeader(zone)
	if err != nil {
		return err
	}
	if n != len(zone) {
		return newFormatError("header", n, "trailing bytes after header zone")
	}
	if err := checkField("authorityCode", h.AuthorityCode, h.AuthorityCode, countryCodeRule{}); err != nil {
		err = newFormatError("header", -1, err.Error())
		emitSealImportFailed(ctx, err)
		return err
	}

	next := d.seal.Clone()
	next.Header = h
	f := d.fields
	f.AuthorityCode = h.AuthorityCode
	m, seal, err := deriveForward(f, next)
	if err != nil {
		emitSealImportFailed(ctx, err)
		return err
	}
	d.fields, d.mrz, d.seal = f, m, seal
	emitSealImported(ctx, f.AuthorityCode, f.mrzFields().Number, seal.Features.Len())
	return nil
}

// SetMessageZone replaces the features and reparses the whole seal.
func (d *Document) SetMessageZone(zone []byte) error {
	fs, err := DecodeMessage(zone)
	if err != nil {
		return err
	}
	next := d.seal.Clone()
	next.Features = fs
	return d.importSeal(next)
}

// SetUnsignedSeal replaces header and message, clearing any signature.
func (d *Document) SetUnsignedSeal(data []byte) error {
	seal, err := DecodeSeal(data)
	if err != nil {
		return err
	}
	if len(seal.Signature) > 0 {
		return newFormatError("signature", -1, "unsigned seal carries a signature zone")
	}
	return d.importSeal(seal)
}

// SetSignedSeal replaces every zone.
func (d *Document) SetSignedSeal(data []byte) error {
	seal, err := DecodeSeal(data)
	if err != nil {
		return err
	}
	return d.importSeal(seal)
}

// Fingerprint hashes the signed seal with the document's fingerprint algorithm.
func (d *Document) Fingerprint() (string, error) {
	data, err := d.SignedSeal()
	if err != nil {
		return "", err
	}
	return Fingerprint(d.hash, data)
}
