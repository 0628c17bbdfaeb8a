// Package xml provides the XML record codec.
package xml

import (
	"encoding/xml"

	alfa "github.com/sentamalin/alfa-id-generator-sub003"
)

// xmlCodec implements alfa.Codec for XML.
type xmlCodec struct{}

// New returns an XML codec.
func New() alfa.Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
