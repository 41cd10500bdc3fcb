package sshkeysign

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignatureHashNames(t *testing.T) {
	tests := []struct {
		hash SignatureHash
		name string
	}{
		{HashRSASHA1, "ssh-rsa"},
		{HashRSASHA256, "rsa-sha2-256"},
		{HashRSASHA512, "rsa-sha2-512"},
		{HashECDSAP256, "ecdsa-sha2-nistp256"},
		{HashECDSAP384, "ecdsa-sha2-nistp384"},
		{HashEd25519, "ssh-ed25519"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hash.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			hash, err := signatureHashFromName([]byte(tt.name))
			if err != nil {
				t.Fatalf("signatureHashFromName() error = %v", err)
			}
			if hash != tt.hash {
				t.Errorf("signatureHashFromName() = %v, want %v", hash, tt.hash)
			}
		})
	}
}

func TestSignatureHashFromNameUnknown(t *testing.T) {
	_, err := signatureHashFromName([]byte("ssh-dss"))
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("error = %v, want ErrInvalidSignature", err)
	}
}

func TestParseSignatureRoundTripWithTail(t *testing.T) {
	sig := &Signature{Hash: HashEd25519, Blob: bytes.Repeat([]byte{0xab}, 64)}

	tails := [][]byte{nil, {}, {0x01}, []byte("trailing garbage")}
	for _, tail := range tails {
		raw := append(sig.Marshal(), tail...)

		parsed, rest, err := ParseSignature(raw)
		require.NoError(t, err)
		require.Equal(t, sig, parsed)
		require.Equal(t, len(tail), len(rest))
		require.Equal(t, []byte(tail), append([]byte{}, rest...))
	}
}

func TestParseSignatureErrors(t *testing.T) {
	unknown := NewWriter()
	unknown.WriteString([]byte("ssh-dss"))
	unknown.WriteString([]byte("sig"))

	missingBlob := NewWriter()
	missingBlob.WriteString([]byte(KeyAlgoEd25519))

	tests := []struct {
		name    string
		raw     []byte
		wantErr error
	}{
		{"empty input", nil, ErrBufferTooShort},
		{"unknown algorithm", unknown.Bytes(), ErrInvalidSignature},
		{"missing signature string", missingBlob.Bytes(), ErrBufferTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSignature(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseSignature() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifierSigECDSARepack(t *testing.T) {
	r := []byte{0x00, 0x9c, 0x01}
	s := []byte{0x7f, 0xee}

	blob := NewWriter()
	blob.WriteString(r)
	blob.WriteString(s)
	sig := &Signature{Hash: HashECDSAP256, Blob: blob.Bytes()}

	got, err := sig.VerifierSig()
	require.NoError(t, err)
	require.Equal(t, encodeECDSASignature(r, s), got)
}

func TestVerifierSigPassThrough(t *testing.T) {
	for _, hash := range []SignatureHash{HashRSASHA1, HashRSASHA256, HashRSASHA512, HashEd25519} {
		sig := &Signature{Hash: hash, Blob: []byte{1, 2, 3}}
		got, err := sig.VerifierSig()
		require.NoError(t, err)
		require.Equal(t, sig.Blob, got)
	}
}

func TestVerifierSigECDSATruncatedBlob(t *testing.T) {
	sig := &Signature{Hash: HashECDSAP384, Blob: []byte{0, 0, 0, 9}}
	_, err := sig.VerifierSig()
	if !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("error = %v, want ErrBufferTooShort", err)
	}
}
