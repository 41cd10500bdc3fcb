package sshkeysign

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"

	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Verify checks the signature over data against key.
//
// It returns nil on success, ErrInvalidSignature when the (hash, key)
// pair is not a supported combination, and ErrSignatureDoesNotMatch
// when the cryptographic backend rejects the signature or the key
// material itself (RSA moduli outside 2048 to 8192 bits, points not on
// the curve). An ECDSA signature blob that does not hold two complete
// SSH strings fails with ErrBufferTooShort.
//
// The backend only ever sees VerifierKey and VerifierSig shapes; the
// original SSH bytes are not consulted here.
func (s *Signature) Verify(key PublicKey, data []byte) error {
	switch s.Hash {
	case HashRSASHA1, HashRSASHA256, HashRSASHA512:
		k, ok := key.(*RSAPublicKey)
		if !ok {
			return ErrInvalidSignature
		}
		pub, err := x509.ParsePKCS1PublicKey(k.VerifierKey())
		if err != nil {
			return ErrSignatureDoesNotMatch
		}
		if bits := pub.N.BitLen(); bits < 2048 || bits > 8192 {
			return ErrSignatureDoesNotMatch
		}
		if err := rsa.VerifyPKCS1v15(pub, s.Hash.hashFunc(), computeDigest(s.Hash.hashFunc(), data), s.Blob); err != nil {
			return ErrSignatureDoesNotMatch
		}
		return nil

	case HashECDSAP256:
		k, ok := key.(*ECDSAP256PublicKey)
		if !ok {
			return ErrInvalidSignature
		}
		return verifyECDSA(elliptic.P256(), k.VerifierKey(), s, data)

	case HashECDSAP384:
		k, ok := key.(*ECDSAP384PublicKey)
		if !ok {
			return ErrInvalidSignature
		}
		return verifyECDSA(elliptic.P384(), k.VerifierKey(), s, data)

	case HashEd25519:
		k, ok := key.(*Ed25519PublicKey)
		if !ok {
			return ErrInvalidSignature
		}
		if len(k.Key) != ed25519.PublicKeySize {
			return ErrSignatureDoesNotMatch
		}
		if !ed25519.Verify(ed25519.PublicKey(k.Key), data, s.Blob) {
			return ErrSignatureDoesNotMatch
		}
		return nil

	default:
		return ErrInvalidSignature
	}
}

func verifyECDSA(curve elliptic.Curve, point []byte, s *Signature, data []byte) error {
	x, y := elliptic.Unmarshal(curve, point)
	if x == nil {
		return ErrSignatureDoesNotMatch
	}
	pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}

	der, err := s.VerifierSig()
	if err != nil {
		return err
	}
	if !ecdsa.VerifyASN1(pub, computeDigest(s.Hash.hashFunc(), data), der) {
		return ErrSignatureDoesNotMatch
	}
	return nil
}

// computeDigest computes the digest of data using the given hash.
func computeDigest(h crypto.Hash, data []byte) []byte {
	hh := h.New()
	hh.Write(data)
	return hh.Sum(nil)
}
