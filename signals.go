package alfa

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for document and seal events.
var (
	SignalMRZDerived       = capitan.NewSignal("alfa.mrz.derived", "MRZ and seal feature 0x02 re-derived from fields")
	SignalSealExported     = capitan.NewSignal("alfa.seal.exported", "Signed seal rendered as a barcode payload")
	SignalSealImported     = capitan.NewSignal("alfa.seal.imported", "Seal reparsed into document fields")
	SignalSealImportFailed = capitan.NewSignal("alfa.seal.import.failed", "Seal rejected, document unchanged")
	SignalSealSigned       = capitan.NewSignal("alfa.seal.signed", "Signature zone filled by a signer")
)

// Signals for record persistence.
var (
	SignalProcessorCreated = capitan.NewSignal("alfa.processor.created", "Processor instantiated")
	SignalRecordStored     = capitan.NewSignal("alfa.record.stored", "Record encrypted and marshaled for storage")
	SignalRecordLoaded     = capitan.NewSignal("alfa.record.loaded", "Record unmarshaled and decrypted from storage")
	SignalRecordSent       = capitan.NewSignal("alfa.record.sent", "Record masked and marshaled for an external party")
)

// Keys for typed event data.
var (
	KeyAuthority      = capitan.NewStringKey("authority")
	KeyDocumentNumber = capitan.NewStringKey("document_number")
	KeyFingerprint    = capitan.NewStringKey("fingerprint")
	KeyFeatureCount   = capitan.NewIntKey("feature_count")
	KeyContentType    = capitan.NewStringKey("content_type")
	KeyTypeName       = capitan.NewStringKey("type_name")
	KeySize           = capitan.NewIntKey("size")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyEncryptedCount = capitan.NewIntKey("encrypted_count")
	KeyDecryptedCount = capitan.NewIntKey("decrypted_count")
	KeyMaskedCount    = capitan.NewIntKey("masked_count")
)

// document numbers never leave the process unmasked
var eventNumberMasker = NumberMasker()

func emitMRZDerived(ctx context.Context, authority, number string) {
	capitan.Emit(ctx, SignalMRZDerived,
		KeyAuthority.Field(authority),
		KeyDocumentNumber.Field(eventNumberMasker.Mask(number)),
	)
}

func emitSealExported(ctx context.Context, authority string, size int, fingerprint string) {
	capitan.Emit(ctx, SignalSealExported,
		KeyAuthority.Field(authority),
		KeySize.Field(size),
		KeyFingerprint.Field(fingerprint),
	)
}

func emitSealImported(ctx context.Context, authority, number string, features int) {
	capitan.Emit(ctx, SignalSealImported,
		KeyAuthority.Field(authority),
		KeyDocumentNumber.Field(eventNumberMasker.Mask(number)),
		KeyFeatureCount.Field(features),
	)
}

func emitSealImportFailed(ctx context.Context, err error) {
	capitan.Error(ctx, SignalSealImportFailed, KeyError.Field(err))
}

// emitSealSigned reports a signing attempt; err is nil on success.
func emitSealSigned(ctx context.Context, authority string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyAuthority.Field(authority),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSealSigned, fields...)
	} else {
		capitan.Emit(ctx, SignalSealSigned, fields...)
	}
}

func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

func emitRecordStored(ctx context.Context, contentType, typeName string, size int, duration time.Duration, encrypted int, err error) {
	fields := append(recordFields(contentType, typeName, size, duration), KeyEncryptedCount.Field(encrypted))
	if err != nil {
		capitan.Error(ctx, SignalRecordStored, append(fields, KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalRecordStored, fields...)
}

func emitRecordLoaded(ctx context.Context, contentType, typeName string, size int, duration time.Duration, decrypted int, err error) {
	fields := append(recordFields(contentType, typeName, size, duration), KeyDecryptedCount.Field(decrypted))
	if err != nil {
		capitan.Error(ctx, SignalRecordLoaded, append(fields, KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalRecordLoaded, fields...)
}

func emitRecordSent(ctx context.Context, contentType, typeName string, size int, duration time.Duration, masked int, err error) {
	fields := append(recordFields(contentType, typeName, size, duration), KeyMaskedCount.Field(masked))
	if err != nil {
		capitan.Error(ctx, SignalRecordSent, append(fields, KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalRecordSent, fields...)
}

func recordFields(contentType, typeName string, size int, duration time.Duration) []capitan.Field {
	return []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
}
