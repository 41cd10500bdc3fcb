// Package sshkeysign is a client for the SSH authentication-agent
// protocol. It lists the public identities an agent holds, requests
// signatures over arbitrary data, and removes cached identities, and
// it carries the key, signature and verification model those
// operations trade in: SSH-format public keys (RSA, ECDSA P-256,
// ECDSA P-384, Ed25519), the signature blobs agents return, and a
// verifier checking those signatures against a known public key.
//
// The library does not construct the transport. Connect a stream to
// the agent (typically the UNIX socket named by SSH_AUTH_SOCK) and
// hand it to NewClient.
package sshkeysign
