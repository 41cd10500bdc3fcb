package sshkeysign

import "encoding/binary"

// Message numbers of the SSH agent protocol.
//
// Reference: https://datatracker.ietf.org/doc/html/draft-miller-ssh-agent-04#section-5.1
//
// Replies sent by the agent.
const (
	msgFailure          uint8 = 5
	msgSuccess          uint8 = 6
	msgIdentitiesAnswer uint8 = 12
	msgSignResponse     uint8 = 14
)

// Requests sent to the agent. Only REQUEST_IDENTITIES, SIGN_REQUEST
// and REMOVE_ALL_IDENTITIES are issued by this library; the rest are
// part of the protocol number space and reserved here so nothing else
// squats on them.
const (
	msgRequestIdentities          uint8 = 11
	msgSignRequest                uint8 = 13
	msgAddIdentity                uint8 = 17
	msgRemoveIdentity             uint8 = 18
	msgRemoveAllIdentities        uint8 = 19
	msgAddSmartcardKey            uint8 = 20
	msgRemoveSmartcardKey         uint8 = 21
	msgLock                       uint8 = 22
	msgUnlock                     uint8 = 23
	msgAddIDConstrained           uint8 = 25
	msgAddSmartcardKeyConstrained uint8 = 26
	msgExtension                  uint8 = 27
)

// Key constraint numbers used by the constrained add operations.
const (
	constrainLifetime  uint8 = 1
	constrainConfirm   uint8 = 2
	constrainExtension uint8 = 3
)

// Flag bits of the SIGN_REQUEST flags word selecting the RSA SHA-2
// signature variants.
const (
	signFlagRSASHA256 uint32 = 2
	signFlagRSASHA512 uint32 = 4
)

// messageBuilder assembles one framed agent message: a uint32 length
// prefix covering everything after itself, then the payload.
type messageBuilder struct {
	w *Writer
}

func newMessageBuilder() *messageBuilder {
	w := NewWriter()
	w.WriteUint32(0) // patched by payload
	return &messageBuilder{w: w}
}

func (m *messageBuilder) writeUint8(b uint8)   { m.w.WriteUint8(b) }
func (m *messageBuilder) writeUint32(u uint32) { m.w.WriteUint32(u) }
func (m *messageBuilder) writeString(s []byte) { m.w.WriteString(s) }

// payload patches the length prefix and returns the framed message.
func (m *messageBuilder) payload() []byte {
	buf := m.w.Bytes()
	binary.BigEndian.PutUint32(buf, uint32(len(buf)-4))
	return buf
}
