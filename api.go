// Package alfa builds ICAO 9303 machine-readable visas and their visible
// digital seals, keeping the two consistent.
//
// A Document holds the holder and visa fields. Every field setter
// re-derives the two-line MRV-B machine-readable zone and stores it,
// C40-packed, as seal feature 0x02. Importing a seal runs the reverse
// direction: the MRZ is unpacked, its check digits verified and every field
// rebuilt. Either direction commits all or nothing.
//
// # Seal Layout
//
// A seal is three zones concatenated:
//
//	header    DC 03 <country C40> <signer+ref C40> <issue> <sign> 5D 01
//	message   <tag> <BER length> <value> ...   (tags ascending, unique)
//	signature FF <BER length> <signature bytes> (absent when unsigned)
//
// Version 3 headers (0x02) carry a five character certificate reference.
// Version 4 headers (0x03) carry a length-prefixed reference of up to 255
// hex characters.
//
// # Basic Usage
//
//	d, _ := alfa.NewDocument(
//	    alfa.WithIdentifierCode("UTSS"),
//	    alfa.WithCertReference("4A7C"),
//	)
//	_ = d.SetTypeCode("V")
//	_ = d.SetAuthorityCode("UTO")
//	_ = d.SetNumber("T32069231")
//	_ = d.SetFullName("Eriksson, Anna-Maria")
//	...
//	_ = d.Sign(ctx, signer)
//
//	// base45 text for the barcode
//	text, _ := d.BarcodePayload(ctx, alfa.BarcodeSeal)
//
//	// and back
//	other, _ := alfa.NewDocument()
//	_ = other.ImportBarcode(text)
//
// # Records
//
// Record is a flat snapshot of a Document. A Processor marshals records
// across three boundaries (Store, Load and Send), driven by struct tags:
//
//	store.encrypt:"aes"   - encrypt on Store
//	load.decrypt:"aes"    - decrypt on Load
//	send.mask:"number"    - mask on Send (name, number, date, uuid)
//	send.redact:"***"     - replace on Send
//
//	proc, _ := alfa.NewProcessor[alfa.Record](json.New())
//	proc.SetEncryptor(alfa.EncryptAES, enc)
//	data, _ := proc.Store(ctx, &rec)
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Events
//
// Derivations, imports, exports, signing and record processing emit capitan
// signals. Document numbers in events are masked.
package alfa
