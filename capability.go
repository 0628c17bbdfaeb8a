package alfa

// EncryptAlgo represents a supported encryption algorithm.
// Use these constants in struct tags: `store.encrypt:"aes"`
type EncryptAlgo string

const (
	// EncryptAES uses AES-GCM symmetric encryption.
	EncryptAES EncryptAlgo = "aes"
)

// HashAlgo represents a supported seal fingerprint algorithm.
type HashAlgo string

const (
	HashSHA256  HashAlgo = "sha256"
	HashSHA512  HashAlgo = "sha512"
	HashBLAKE2b HashAlgo = "blake2b"
)

var validEncryptAlgos = map[EncryptAlgo]bool{
	EncryptAES: true,
}

var validHashAlgos = map[HashAlgo]bool{
	HashSHA256:  true,
	HashSHA512:  true,
	HashBLAKE2b: true,
}

var validMaskTypes = map[MaskType]bool{
	MaskName:   true,
	MaskNumber: true,
	MaskDate:   true,
	MaskUUID:   true,
}

// IsValidEncryptAlgo returns true if the algorithm is a known encryption algorithm.
func IsValidEncryptAlgo(algo EncryptAlgo) bool {
	return validEncryptAlgos[algo]
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}
