package sshkeysign

import "errors"

// Common errors
var (
	ErrBufferTooShort        = errors.New("buffer too short")
	ErrCouldNotReadKey       = errors.New("could not read key")
	ErrInvalidKeyLength      = errors.New("invalid key length")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrSignatureDoesNotMatch = errors.New("signature does not match")
	ErrRequestFailure        = errors.New("agent request failure")
)
