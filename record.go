package alfa

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is a flat snapshot of a Document for storage and transport.
// Personal data is encrypted at rest and masked when sent; the seal itself
// carries every field again and is redacted when sent.
type Record struct {
	ID               string `json:"id" yaml:"id" msgpack:"id" xml:"id" bson:"_id" send.mask:"uuid"`
	TypeCode         string `json:"type_code" yaml:"type_code" msgpack:"type_code" xml:"type_code" bson:"type_code"`
	AuthorityCode    string `json:"authority_code" yaml:"authority_code" msgpack:"authority_code" xml:"authority_code" bson:"authority_code"`
	Number           string `json:"number" yaml:"number" msgpack:"number" xml:"number" bson:"number" store.encrypt:"aes" load.decrypt:"aes" send.mask:"number"`
	FullName         string `json:"full_name" yaml:"full_name" msgpack:"full_name" xml:"full_name" bson:"full_name" store.encrypt:"aes" load.decrypt:"aes" send.mask:"name"`
	NationalityCode  string `json:"nationality_code" yaml:"nationality_code" msgpack:"nationality_code" xml:"nationality_code" bson:"nationality_code"`
	BirthDate        string `json:"birth_date" yaml:"birth_date" msgpack:"birth_date" xml:"birth_date" bson:"birth_date" store.encrypt:"aes" load.decrypt:"aes" send.mask:"date"`
	GenderMarker     string `json:"gender_marker" yaml:"gender_marker" msgpack:"gender_marker" xml:"gender_marker" bson:"gender_marker"`
	ValidThru        string `json:"valid_thru" yaml:"valid_thru" msgpack:"valid_thru" xml:"valid_thru" bson:"valid_thru"`
	OptionalData     string `json:"optional_data,omitempty" yaml:"optional_data,omitempty" msgpack:"optional_data,omitempty" xml:"optional_data,omitempty" bson:"optional_data,omitempty"`
	PassportNumber   string `json:"passport_number,omitempty" yaml:"passport_number,omitempty" msgpack:"passport_number,omitempty" xml:"passport_number,omitempty" bson:"passport_number,omitempty" store.encrypt:"aes" load.decrypt:"aes" send.mask:"number"`
	UsePassportInMRZ bool   `json:"use_passport_in_mrz" yaml:"use_passport_in_mrz" msgpack:"use_passport_in_mrz" xml:"use_passport_in_mrz" bson:"use_passport_in_mrz"`
	Seal             string `json:"seal" yaml:"seal" msgpack:"seal" xml:"seal" bson:"seal" store.encrypt:"aes" load.decrypt:"aes" send.redact:"[REDACTED]"`
	Fingerprint      string `json:"fingerprint" yaml:"fingerprint" msgpack:"fingerprint" xml:"fingerprint" bson:"fingerprint"`
	URL              string `json:"url,omitempty" yaml:"url,omitempty" msgpack:"url,omitempty" xml:"url,omitempty" bson:"url,omitempty"`
}

// Clone returns a copy; Record holds only values.
func (r Record) Clone() Record {
	return r
}

// ID returns the document identifier assigned at construction.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Record snapshots the document. The seal is stored as base45 text.
func (d *Document) Record() (Record, error) {
	data, err := d.SignedSeal()
	if err != nil {
		return Record{}, err
	}
	fp, err := Fingerprint(d.hash, data)
	if err != nil {
		return Record{}, err
	}

	f := d.fields
	return Record{
		ID:               d.id.String(),
		TypeCode:         f.TypeCode,
		AuthorityCode:    f.AuthorityCode,
		Number:           f.Number,
		FullName:         f.FullName,
		NationalityCode:  f.NationalityCode,
		BirthDate:        formatRecordDate(f.BirthDate),
		GenderMarker:     f.GenderMarker,
		ValidThru:        formatRecordDate(f.ValidThru),
		OptionalData:     f.OptionalData,
		PassportNumber:   f.PassportNumber,
		UsePassportInMRZ: f.UsePassportInMRZ,
		Seal:             Base45.EncodeToString(data),
		Fingerprint:      fp,
		URL:              d.url,
	}, nil
}

// NewDocumentFromRecord rebuilds a document from a snapshot. The seal is
// authoritative; the record's visa number fills in when the MRZ carries the
// passport number instead.
func NewDocumentFromRecord(r Record, opts ...Option) (*Document, error) {
	d, err := NewDocument(append([]Option{WithURL(r.URL)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, newRangeError("id", r.ID, "is not a UUID")
		}
		d.id = id
	}

	if r.Seal == "" {
		return nil, fmt.Errorf("%w: record carries no seal", ErrMissingFeature)
	}
	d.fields.Number = r.Number
	if err := d.ImportBarcode(r.Seal); err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return d, nil
}

func formatRecordDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
