package sshkeysign

import "crypto"

// SignatureHash identifies the algorithm and hash a signature was made
// with, as named by the signature blob's identifier string.
type SignatureHash int

const (
	// RSASSA-PKCS1-v1_5 w/ SHA-1, wire name ssh-rsa.
	HashRSASHA1 SignatureHash = iota + 1

	// RSASSA-PKCS1-v1_5 w/ SHA-256, wire name rsa-sha2-256.
	HashRSASHA256

	// RSASSA-PKCS1-v1_5 w/ SHA-512, wire name rsa-sha2-512.
	HashRSASHA512

	// ECDSA over P-256 w/ SHA-256, wire name ecdsa-sha2-nistp256.
	HashECDSAP256

	// ECDSA over P-384 w/ SHA-384, wire name ecdsa-sha2-nistp384.
	HashECDSAP384

	// PureEdDSA over Curve25519, wire name ssh-ed25519.
	HashEd25519
)

// signatureHashFromName maps a wire algorithm identifier to its
// SignatureHash. Unknown names fail with ErrInvalidSignature.
func signatureHashFromName(name []byte) (SignatureHash, error) {
	switch string(name) {
	case KeyAlgoRSA:
		return HashRSASHA1, nil
	case KeyAlgoRSASHA256:
		return HashRSASHA256, nil
	case KeyAlgoRSASHA512:
		return HashRSASHA512, nil
	case KeyAlgoECDSAP256:
		return HashECDSAP256, nil
	case KeyAlgoECDSAP384:
		return HashECDSAP384, nil
	case KeyAlgoEd25519:
		return HashEd25519, nil
	default:
		return 0, ErrInvalidSignature
	}
}

// String returns the wire algorithm identifier of the hash.
func (h SignatureHash) String() string {
	switch h {
	case HashRSASHA1:
		return KeyAlgoRSA
	case HashRSASHA256:
		return KeyAlgoRSASHA256
	case HashRSASHA512:
		return KeyAlgoRSASHA512
	case HashECDSAP256:
		return KeyAlgoECDSAP256
	case HashECDSAP384:
		return KeyAlgoECDSAP384
	case HashEd25519:
		return KeyAlgoEd25519
	default:
		return "unknown"
	}
}

// hashFunc returns the digest the verification backend applies for the
// hash, or 0 where the backend hashes internally (Ed25519).
func (h SignatureHash) hashFunc() crypto.Hash {
	switch h {
	case HashRSASHA1:
		return crypto.SHA1
	case HashRSASHA256:
		return crypto.SHA256
	case HashECDSAP256:
		return crypto.SHA256
	case HashECDSAP384:
		return crypto.SHA384
	case HashRSASHA512:
		return crypto.SHA512
	default:
		return 0
	}
}

// Signature is an SSH signature as returned by a SIGN_RESPONSE.
type Signature struct {
	Hash SignatureHash

	// Blob is the raw signature from the inner SSH string,
	// interpreted per algorithm: PKCS#1 v1.5 octets for RSA, two SSH
	// strings r and s for ECDSA, 64 raw bytes for Ed25519.
	Blob []byte
}

// ParseSignature parses an SSH signature blob from the front of raw
// and returns it together with any unread trailing bytes.
func ParseSignature(raw []byte) (*Signature, []byte, error) {
	r := NewReader(raw)

	algo, err := r.ReadString()
	if err != nil {
		return nil, nil, err
	}
	hash, err := signatureHashFromName(algo)
	if err != nil {
		return nil, nil, err
	}
	blob, err := r.ReadString()
	if err != nil {
		return nil, nil, err
	}

	return &Signature{Hash: hash, Blob: cloneBytes(blob)}, r.Remaining(), nil
}

// Marshal returns the SSH wire encoding of the signature: the
// algorithm identifier string followed by the signature string.
func (s *Signature) Marshal() []byte {
	w := NewWriter()
	w.WriteString([]byte(s.Hash.String()))
	w.WriteString(s.Blob)
	return w.Bytes()
}

// VerifierSig returns the signature bytes in the shape the
// verification backend consumes. RSA and Ed25519 signatures pass
// through unchanged; ECDSA blobs, which the SSH convention wraps as
// two separate strings r and s, are repacked as the DER
// SEQUENCE { INTEGER r, INTEGER s } the backend expects.
func (s *Signature) VerifierSig() ([]byte, error) {
	switch s.Hash {
	case HashECDSAP256, HashECDSAP384:
		r := NewReader(s.Blob)
		rBytes, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		sBytes, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return encodeECDSASignature(rBytes, sBytes), nil
	default:
		return s.Blob, nil
	}
}
