// Package testing provides fixtures for tests of the alfa module: the ICAO
// 9303 sample visa, a fixed AES key and a deterministic signer.
package testing

import (
	"bytes"
	"context"
	"testing"
	"time"

	alfa "github.com/sentamalin/alfa-id-generator-sub003"
)

// Sample visa holder from ICAO 9303-7.
const (
	SampleTypeCode       = "V"
	SampleAuthorityCode  = "UTO"
	SampleNumber         = "T32069231"
	SampleFullName       = "Eriksson, Anna-Maria"
	SampleNationality    = "UTO"
	SampleGenderMarker   = "F"
	SamplePassportNumber = "L898902C3"
	SampleIdentifierCode = "UTSS"
	SampleCertReference  = "4A7C"
)

// SampleBirthDate is the holder's date of birth.
var SampleBirthDate = time.Date(1974, time.August, 12, 0, 0, 0, 0, time.UTC)

// SampleValidThru is the visa expiry date.
var SampleValidThru = time.Date(2012, time.April, 15, 0, 0, 0, 0, time.UTC)

// SampleIssueDate is used for both header dates.
var SampleIssueDate = time.Date(2011, time.April, 15, 0, 0, 0, 0, time.UTC)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor keyed with TestKey.
func TestEncryptor(tb testing.TB) alfa.Encryptor {
	tb.Helper()
	enc, err := alfa.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES: %v", err)
	}
	return enc
}

// FixedSigner returns a signer that always produces sig, so encoded seals
// are reproducible.
func FixedSigner(sig []byte) alfa.Signer {
	return alfa.SignerFunc(func(_ context.Context, _ []byte) ([]byte, error) {
		return bytes.Clone(sig), nil
	})
}

// SampleDocument builds the ICAO sample visa with fixed header values.
func SampleDocument(tb testing.TB, opts ...alfa.Option) *alfa.Document {
	tb.Helper()

	base := []alfa.Option{
		alfa.WithIdentifierCode(SampleIdentifierCode),
		alfa.WithCertReference(SampleCertReference),
		alfa.WithIssueDate(SampleIssueDate),
		alfa.WithSignatureDate(SampleIssueDate),
	}
	d, err := alfa.NewDocument(append(base, opts...)...)
	if err != nil {
		tb.Fatalf("NewDocument: %v", err)
	}

	steps := []struct {
		name string
		err  error
	}{
		{"SetTypeCode", d.SetTypeCode(SampleTypeCode)},
		{"SetAuthorityCode", d.SetAuthorityCode(SampleAuthorityCode)},
		{"SetNumber", d.SetNumber(SampleNumber)},
		{"SetFullName", d.SetFullName(SampleFullName)},
		{"SetNationalityCode", d.SetNationalityCode(SampleNationality)},
		{"SetBirthDate", d.SetBirthDate(SampleBirthDate)},
		{"SetGenderMarker", d.SetGenderMarker(SampleGenderMarker)},
		{"SetValidThru", d.SetValidThru(SampleValidThru)},
		{"SetPassportNumber", d.SetPassportNumber(SamplePassportNumber)},
	}
	for _, s := range steps {
		if s.err != nil {
			tb.Fatalf("%s: %v", s.name, s.err)
		}
	}
	return d
}
