package sshkeysign

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Identity is a public key held by the agent together with its
// human-readable comment.
type Identity struct {
	Key     PublicKey
	Comment string
}

// String renders the identity as an authorized_keys line.
func (id Identity) String() string {
	return MarshalAuthorizedKey(id.Key, id.Comment)
}

// Client drives the agent protocol over a duplex byte stream,
// typically a UNIX domain socket connected to the path in
// SSH_AUTH_SOCK. The stream is owned by the caller; the client never
// closes it.
//
// All operations are synchronous request/response with a single
// operation in flight. A Client must not be used concurrently. After
// any transport error the client is dead: discard it and connect a
// fresh stream.
type Client struct {
	stream io.ReadWriter
}

// NewClient returns a client speaking the agent protocol over stream.
func NewClient(stream io.ReadWriter) *Client {
	return &Client{stream: stream}
}

// RequestIdentities asks the agent for the public keys it holds,
// preserving the agent's order.
//
// It fails with ErrRequestFailure when the agent answers with anything
// but IDENTITIES_ANSWER, with a wrapped transport error on short I/O,
// and with an "invalid utf-8" error when a comment is not valid UTF-8.
func (c *Client) RequestIdentities() ([]Identity, error) {
	msg := newMessageBuilder()
	msg.writeUint8(msgRequestIdentities)
	if err := c.send(msg); err != nil {
		return nil, err
	}

	resp, err := c.readResponse()
	if err != nil {
		return nil, err
	}
	r := NewReader(resp)

	tag, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if tag != msgIdentitiesAnswer {
		return nil, ErrRequestFailure
	}

	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	identities := make([]Identity, 0, n)
	for i := uint32(0); i < n; i++ {
		rawKey, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		rawComment, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		key, err := ParsePublicKey(rawKey)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(rawComment) {
			return nil, errors.New("invalid utf-8 in identity comment")
		}
		identities = append(identities, Identity{Key: key, Comment: string(rawComment)})
	}
	return identities, nil
}

// SignRequest asks the agent to sign data under key. The key must be
// one previously returned by RequestIdentities or otherwise held by
// the agent.
//
// For RSA keys the request advertises the SHA-2 flag bit matching the
// key's PreferredHash; all other keys send a zero flags word.
func (c *Client) SignRequest(key PublicKey, data []byte) (*Signature, error) {
	msg := newMessageBuilder()
	msg.writeUint8(msgSignRequest)
	msg.writeString(key.Marshal())
	msg.writeString(data)
	msg.writeUint32(signFlags(key))
	if err := c.send(msg); err != nil {
		return nil, err
	}

	resp, err := c.readResponse()
	if err != nil {
		return nil, err
	}
	r := NewReader(resp)

	tag, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if tag != msgSignResponse {
		return nil, ErrRequestFailure
	}

	raw, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	sig, rest, err := ParseSignature(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrInvalidSignature
	}
	return sig, nil
}

// RemoveAllIdentities asks the agent to drop every cached identity.
func (c *Client) RemoveAllIdentities() error {
	msg := newMessageBuilder()
	msg.writeUint8(msgRemoveAllIdentities)
	if err := c.send(msg); err != nil {
		return err
	}

	resp, err := c.readResponse()
	if err != nil {
		return err
	}
	r := NewReader(resp)

	tag, err := r.ReadUint8()
	if err != nil {
		return err
	}
	if tag != msgSuccess {
		return ErrRequestFailure
	}
	return nil
}

func signFlags(key PublicKey) uint32 {
	if rsa, ok := key.(*RSAPublicKey); ok {
		switch rsa.PreferredHash {
		case HashRSASHA256:
			return signFlagRSASHA256
		case HashRSASHA512:
			return signFlagRSASHA512
		}
	}
	return 0
}

func (c *Client) send(msg *messageBuilder) error {
	if _, err := c.stream.Write(msg.payload()); err != nil {
		return errors.Wrap(err, "write agent request")
	}
	return nil
}

// readResponse reads one framed agent message and returns its payload.
// Short reads are fatal.
func (c *Client) readResponse() ([]byte, error) {
	var lenBytes [4]byte
	if _, err := io.ReadFull(c.stream, lenBytes[:]); err != nil {
		return nil, errors.Wrap(err, "read agent response length")
	}
	payload := make([]byte, binary.BigEndian.Uint32(lenBytes[:]))
	if _, err := io.ReadFull(c.stream, payload); err != nil {
		return nil, errors.Wrap(err, "read agent response")
	}
	return payload, nil
}
