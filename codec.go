package alfa

// Codec provides content-type aware marshaling of records.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// TextCodec renders binary seal data as barcode-safe text and back.
type TextCodec interface {
	// Name identifies the alphabet (e.g., "base45").
	Name() string

	// EncodeToString renders data as text.
	EncodeToString(data []byte) string

	// DecodeString parses text produced by EncodeToString.
	DecodeString(text string) ([]byte, error)
}
