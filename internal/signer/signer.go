package signer

// Signer produces the detached signature published next to the
// repository summary document.
type Signer interface {
	// SignDetached creates an armored detached signature (repomd.xml.asc)
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}
