package sshkeysign

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"golang.org/x/crypto/ssh"
)

func generateTestRSAKey(t *testing.T, bits int) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		t.Fatalf("rsa.GenerateKey() error = %v", err)
	}
	return key
}

func generateTestECDSAKey(t *testing.T, curve elliptic.Curve) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey() error = %v", err)
	}
	return key
}

func generateTestEd25519Key(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519.GenerateKey() error = %v", err)
	}
	return key
}

// wireBlob produces the reference SSH wire encoding of a public key.
func wireBlob(t *testing.T, pub interface{}) []byte {
	t.Helper()
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("ssh.NewPublicKey() error = %v", err)
	}
	return sshPub.Marshal()
}

// referenceSign signs data the way an agent would, using the reference
// implementation, and returns the result as a Signature.
func referenceSign(t *testing.T, priv interface{}, data []byte) *Signature {
	t.Helper()
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("ssh.NewSignerFromKey() error = %v", err)
	}
	sig, err := signer.Sign(rand.Reader, data)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	hash, err := signatureHashFromName([]byte(sig.Format))
	if err != nil {
		t.Fatalf("signatureHashFromName(%q) error = %v", sig.Format, err)
	}
	return &Signature{Hash: hash, Blob: sig.Blob}
}

// referenceSignRSA signs data with an explicit RSA signature algorithm.
func referenceSignRSA(t *testing.T, priv *rsa.PrivateKey, data []byte, algo string) *Signature {
	t.Helper()
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("ssh.NewSignerFromKey() error = %v", err)
	}
	as, ok := signer.(ssh.AlgorithmSigner)
	if !ok {
		t.Fatal("rsa signer does not implement ssh.AlgorithmSigner")
	}
	sig, err := as.SignWithAlgorithm(rand.Reader, data, algo)
	if err != nil {
		t.Fatalf("SignWithAlgorithm(%q) error = %v", algo, err)
	}
	hash, err := signatureHashFromName([]byte(sig.Format))
	if err != nil {
		t.Fatalf("signatureHashFromName(%q) error = %v", sig.Format, err)
	}
	return &Signature{Hash: hash, Blob: sig.Blob}
}
