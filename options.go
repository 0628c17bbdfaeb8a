package alfa

import (
	"time"

	"github.com/google/uuid"
)

// Option configures a Document at construction.
type Option func(*Document) error

// WithSealVersion selects the header layout. Defaults to SealVersion4.
func WithSealVersion(v SealVersion) Option {
	return func(d *Document) error {
		return d.SetSealVersion(v)
	}
}

// WithIdentifierCode sets the four character signer identifier.
func WithIdentifierCode(code string) Option {
	return func(d *Document) error {
		return d.SetIdentifierCode(code)
	}
}

// WithCertReference sets the signer certificate reference.
func WithCertReference(ref string) Option {
	return func(d *Document) error {
		return d.SetCertReference(ref)
	}
}

// WithIssueDate sets the header issue date. Defaults to today.
func WithIssueDate(t time.Time) Option {
	return func(d *Document) error {
		return d.SetIssueDate(t)
	}
}

// WithSignatureDate sets the header signature date. Defaults to today.
func WithSignatureDate(t time.Time) Option {
	return func(d *Document) error {
		return d.SetSignatureDate(t)
	}
}

// WithURL sets the link rendered in BarcodeURL mode.
func WithURL(url string) Option {
	return func(d *Document) error {
		d.url = url
		return nil
	}
}

// WithFingerprint selects the algorithm Fingerprint uses. Defaults to SHA-256.
func WithFingerprint(algo HashAlgo) Option {
	return func(d *Document) error {
		if !IsValidHashAlgo(algo) {
			return newRangeError("fingerprint", string(algo), "unknown hash algorithm")
		}
		d.hash = algo
		return nil
	}
}

// NewDocument returns an empty visa document with its MRZ and seal derived.
func NewDocument(opts ...Option) (*Document, error) {
	today := dateOnly(time.Now())
	d := &Document{
		id: uuid.New(),
		seal: Seal{
			Header: Header{
				Version:           SealVersion4,
				IssueDate:         today,
				SignatureDate:     today,
				FeatureDefinition: VisaFeatureDefinition,
				TypeCategory:      VisaTypeCategory,
			},
		},
		hash: HashSHA256,
	}

	m, seal, err := deriveForward(d.fields, d.seal)
	if err != nil {
		return nil, err
	}
	d.mrz, d.seal = m, seal

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// SetURL sets the link rendered in BarcodeURL mode.
func (d *Document) SetURL(url string) {
	d.url = url
}
