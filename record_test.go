package alfa

import (
	"errors"
	"testing"
	"time"
)

func TestDocument_Record(t *testing.T) {
	d := newSampleDocument(t, WithURL("https://visa.example/v/1"))
	if err := d.SetPassportNumber("L898902C3"); err != nil {
		t.Fatal(err)
	}

	r, err := d.Record()
	if err != nil {
		t.Fatal(err)
	}
	if r.ID != d.ID().String() {
		t.Errorf("ID = %q", r.ID)
	}
	if r.BirthDate != "1974-08-12" || r.ValidThru != "2012-04-15" {
		t.Errorf("dates = %q, %q", r.BirthDate, r.ValidThru)
	}
	if r.Number != "T32069231" || r.PassportNumber != "L898902C3" {
		t.Errorf("numbers = %q, %q", r.Number, r.PassportNumber)
	}
	fp, _ := d.Fingerprint()
	if r.Fingerprint != fp || len(fp) != 64 {
		t.Errorf("Fingerprint = %q", r.Fingerprint)
	}

	back, err := NewDocumentFromRecord(r)
	if err != nil {
		t.Fatalf("NewDocumentFromRecord() error: %v", err)
	}
	if back.ID() != d.ID() {
		t.Error("ID changed")
	}
	if back.URL() != "https://visa.example/v/1" {
		t.Errorf("URL() = %q", back.URL())
	}
	if back.MRZ() != d.MRZ() {
		t.Errorf("MRZ() = %q", back.MRZ())
	}
	if back.PassportNumber() != "L898902C3" {
		t.Errorf("PassportNumber() = %q", back.PassportNumber())
	}
}

func TestNewDocumentFromRecord_PassportInMRZ(t *testing.T) {
	d := newSampleDocument(t)
	if err := d.SetPassportNumber("L898902C3"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetUsePassportInMRZ(true); err != nil {
		t.Fatal(err)
	}
	r, err := d.Record()
	if err != nil {
		t.Fatal(err)
	}

	back, err := NewDocumentFromRecord(r)
	if err != nil {
		t.Fatal(err)
	}
	if back.Number() != "T32069231" {
		t.Errorf("Number() = %q, want the record's visa number", back.Number())
	}
	if !back.UsePassportInMRZ() {
		t.Error("UsePassportInMRZ() = false")
	}
}

func TestNewDocumentFromRecord_Errors(t *testing.T) {
	d := newSampleDocument(t)
	good, _ := d.Record()

	t.Run("no seal", func(t *testing.T) {
		r := good
		r.Seal = ""
		if _, err := NewDocumentFromRecord(r); !errors.Is(err, ErrMissingFeature) {
			t.Errorf("error = %v, want ErrMissingFeature", err)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		r := good
		r.ID = "not-a-uuid"
		if _, err := NewDocumentFromRecord(r); !errors.Is(err, ErrRange) {
			t.Errorf("error = %v, want ErrRange", err)
		}
	})

	t.Run("bad seal", func(t *testing.T) {
		r := good
		r.Seal = "A"
		if _, err := NewDocumentFromRecord(r); !errors.Is(err, ErrFormat) {
			t.Errorf("error = %v, want ErrFormat", err)
		}
	})
}

func TestFormatRecordDate(t *testing.T) {
	if got := formatRecordDate(date(2011, time.April, 15)); got != "2011-04-15" {
		t.Errorf("formatRecordDate() = %q", got)
	}
	if got := formatRecordDate(time.Time{}); got != "" {
		t.Errorf("formatRecordDate(zero) = %q", got)
	}
}
