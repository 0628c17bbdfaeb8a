package alfa

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// BarcodeMode selects what a document's barcode carries.
type BarcodeMode int

const (
	// BarcodeSeal carries the base45 text of the signed seal.
	BarcodeSeal BarcodeMode = iota

	// BarcodeURL carries the document URL.
	BarcodeURL
)

func (m BarcodeMode) String() string {
	switch m {
	case BarcodeSeal:
		return "seal"
	case BarcodeURL:
		return "url"
	}
	return fmt.Sprintf("BarcodeMode(%d)", int(m))
}

// ErrNoURL is returned by BarcodePayload in URL mode when no URL is set.
var ErrNoURL = errors.New("document has no URL")

// BarcodePayload returns the text to render in the document's barcode.
func (d *Document) BarcodePayload(ctx context.Context, mode BarcodeMode) (string, error) {
	switch mode {
	case BarcodeURL:
		if d.url == "" {
			return "", ErrNoURL
		}
		return d.url, nil

	case BarcodeSeal:
		data, err := d.SignedSeal()
		if err != nil {
			return "", err
		}
		fp, err := Fingerprint(d.hash, data)
		if err != nil {
			return "", err
		}
		emitSealExported(ctx, d.fields.AuthorityCode, len(data), fp)
		return Base45.EncodeToString(data), nil
	}
	return "", newRangeError("mode", mode.String(), "unknown barcode mode")
}

// ImportBarcode decodes base45 seal text and replaces every zone.
func (d *Document) ImportBarcode(text string) error {
	data, err := Base45.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("barcode: %w", err)
	}
	return d.SetSignedSeal(data)
}
