package sshkeysign

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// Key algorithm identifiers as they appear on the wire and in
// authorized_keys lines.
const (
	KeyAlgoEd25519   = "ssh-ed25519"
	KeyAlgoECDSAP256 = "ecdsa-sha2-nistp256"
	KeyAlgoECDSAP384 = "ecdsa-sha2-nistp384"
	KeyAlgoRSA       = "ssh-rsa"
	KeyAlgoRSASHA256 = "rsa-sha2-256"
	KeyAlgoRSASHA512 = "rsa-sha2-512"
)

// Curve names carried inside ECDSA key blobs in addition to the outer
// algorithm identifier.
const (
	curveNameP256 = "nistp256"
	curveNameP384 = "nistp384"
)

// PublicKey is an SSH public key held by an agent. It is one of
// Ed25519PublicKey, ECDSAP256PublicKey, ECDSAP384PublicKey or
// RSAPublicKey; the set is closed.
//
// Keys are immutable values once parsed and may be shared freely.
type PublicKey interface {
	// Type returns the wire algorithm identifier of the key.
	Type() string

	// Marshal returns the SSH wire encoding of the key, suitable for
	// a SIGN_REQUEST key blob.
	Marshal() []byte

	// VerifierKey returns the key material in the shape the
	// verification backend consumes: the raw public key for Ed25519,
	// the uncompressed curve point for ECDSA, and the PKCS#1 DER
	// encoding for RSA.
	VerifierKey() []byte

	sshPublicKey()
}

// Ed25519PublicKey is a raw 32-byte Ed25519 public key.
type Ed25519PublicKey struct {
	Key []byte
}

// ECDSAP256PublicKey holds an uncompressed P-256 point exactly as
// received.
type ECDSAP256PublicKey struct {
	Q []byte
}

// ECDSAP384PublicKey holds an uncompressed P-384 point exactly as
// received.
type ECDSAP384PublicKey struct {
	Q []byte
}

// RSAPublicKey holds the public exponent and modulus exactly as
// received. E and N keep their wire mpint bytes untouched, leading
// zeros included; the DER encoder depends on the exact sequence.
type RSAPublicKey struct {
	E []byte
	N []byte

	// PreferredHash selects the signing hash advertised on a sign
	// request for this key.
	PreferredHash SignatureHash
}

func (k *Ed25519PublicKey) sshPublicKey()   {}
func (k *ECDSAP256PublicKey) sshPublicKey() {}
func (k *ECDSAP384PublicKey) sshPublicKey() {}
func (k *RSAPublicKey) sshPublicKey()       {}

var (
	_ PublicKey = (*Ed25519PublicKey)(nil)
	_ PublicKey = (*ECDSAP256PublicKey)(nil)
	_ PublicKey = (*ECDSAP384PublicKey)(nil)
	_ PublicKey = (*RSAPublicKey)(nil)
)

// Type returns the wire algorithm identifier of the key.
func (k *Ed25519PublicKey) Type() string { return KeyAlgoEd25519 }

// Type returns the wire algorithm identifier of the key.
func (k *ECDSAP256PublicKey) Type() string { return KeyAlgoECDSAP256 }

// Type returns the wire algorithm identifier of the key.
func (k *ECDSAP384PublicKey) Type() string { return KeyAlgoECDSAP384 }

// Type returns the wire algorithm identifier of the key. The wire
// identifier is always ssh-rsa regardless of PreferredHash; the SHA-2
// names only appear in text prefixes and signature blobs.
func (k *RSAPublicKey) Type() string { return KeyAlgoRSA }

// ParsePublicKey parses the inner SSH public-key blob (no outer length
// prefix) as found in IDENTITIES_ANSWER entries and base64 fields of
// authorized_keys lines.
//
// RSA keys parsed from the wire default to PreferredHash
// HashRSASHA512: the blob only says ssh-rsa, and SHA-2 is what modern
// agents serve. Note the asymmetry with ParseAuthorizedKey, which
// honors the declared text prefix instead.
func ParsePublicKey(blob []byte) (PublicKey, error) {
	r := NewReader(blob)

	algo, err := r.ReadString()
	if err != nil {
		return nil, err
	}

	switch string(algo) {
	case KeyAlgoEd25519:
		key, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if len(key) != ed25519.PublicKeySize {
			return nil, ErrInvalidKeyLength
		}
		return &Ed25519PublicKey{Key: cloneBytes(key)}, nil

	case KeyAlgoECDSAP256:
		curve, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		q, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if string(curve) != curveNameP256 {
			return nil, ErrCouldNotReadKey
		}
		return &ECDSAP256PublicKey{Q: cloneBytes(q)}, nil

	case KeyAlgoECDSAP384:
		curve, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		q, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if string(curve) != curveNameP384 {
			return nil, ErrCouldNotReadKey
		}
		return &ECDSAP384PublicKey{Q: cloneBytes(q)}, nil

	case KeyAlgoRSA:
		// On the wire RSA carries e before n.
		e, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		n, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return &RSAPublicKey{
			E:             cloneBytes(e),
			N:             cloneBytes(n),
			PreferredHash: HashRSASHA512,
		}, nil

	default:
		return nil, ErrCouldNotReadKey
	}
}

// ParseAuthorizedKey parses a single authorized_keys line of the form
// "<algo> <base64-blob> [comment]" and returns the key together with
// the trailing comment, which may be empty.
//
// The text prefix must agree with the algorithm inside the blob. For
// RSA keys the prefix may also be rsa-sha2-256 or rsa-sha2-512, in
// which case the inner blob still says ssh-rsa and the prefix selects
// PreferredHash; a plain ssh-rsa prefix selects HashRSASHA1,
// preserving what the line actually declares.
func ParseAuthorizedKey(line string) (PublicKey, string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, "", ErrCouldNotReadKey
	}

	blob, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return nil, "", errors.Wrap(err, "decode authorized key")
	}

	key, err := ParsePublicKey(blob)
	if err != nil {
		return nil, "", err
	}
	comment := strings.Join(fields[2:], " ")

	if rsa, ok := key.(*RSAPublicKey); ok {
		switch fields[0] {
		case KeyAlgoRSA:
			rsa.PreferredHash = HashRSASHA1
		case KeyAlgoRSASHA256:
			rsa.PreferredHash = HashRSASHA256
		case KeyAlgoRSASHA512:
			rsa.PreferredHash = HashRSASHA512
		default:
			return nil, "", ErrCouldNotReadKey
		}
		return rsa, comment, nil
	}

	if fields[0] != key.Type() {
		return nil, "", ErrCouldNotReadKey
	}
	return key, comment, nil
}

// MarshalAuthorizedKey renders a key as an authorized_keys line,
// without trailing newline. RSA keys are prefixed with the name
// matching their PreferredHash so that ParseAuthorizedKey restores the
// same key.
func MarshalAuthorizedKey(key PublicKey, comment string) string {
	prefix := key.Type()
	if rsa, ok := key.(*RSAPublicKey); ok {
		switch rsa.PreferredHash {
		case HashRSASHA256:
			prefix = KeyAlgoRSASHA256
		case HashRSASHA512:
			prefix = KeyAlgoRSASHA512
		}
	}

	line := prefix + " " + base64.StdEncoding.EncodeToString(key.Marshal())
	if comment != "" {
		line += " " + comment
	}
	return line
}

// Marshal returns the SSH wire encoding of the key.
func (k *Ed25519PublicKey) Marshal() []byte {
	w := NewWriter()
	w.WriteString([]byte(KeyAlgoEd25519))
	w.WriteString(k.Key)
	return w.Bytes()
}

// Marshal returns the SSH wire encoding of the key.
func (k *ECDSAP256PublicKey) Marshal() []byte {
	w := NewWriter()
	w.WriteString([]byte(KeyAlgoECDSAP256))
	w.WriteString([]byte(curveNameP256))
	w.WriteString(k.Q)
	return w.Bytes()
}

// Marshal returns the SSH wire encoding of the key.
func (k *ECDSAP384PublicKey) Marshal() []byte {
	w := NewWriter()
	w.WriteString([]byte(KeyAlgoECDSAP384))
	w.WriteString([]byte(curveNameP384))
	w.WriteString(k.Q)
	return w.Bytes()
}

// Marshal returns the SSH wire encoding of the key.
func (k *RSAPublicKey) Marshal() []byte {
	w := NewWriter()
	w.WriteString([]byte(KeyAlgoRSA))
	w.WriteString(k.E)
	w.WriteString(k.N)
	return w.Bytes()
}

// VerifierKey returns the raw 32-byte public key.
func (k *Ed25519PublicKey) VerifierKey() []byte { return k.Key }

// VerifierKey returns the uncompressed curve point as received.
func (k *ECDSAP256PublicKey) VerifierKey() []byte { return k.Q }

// VerifierKey returns the uncompressed curve point as received.
func (k *ECDSAP384PublicKey) VerifierKey() []byte { return k.Q }

// VerifierKey returns the PKCS#1 RSAPublicKey DER encoding of n and e.
func (k *RSAPublicKey) VerifierKey() []byte { return encodeRSAPublicKey(k.N, k.E) }

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
