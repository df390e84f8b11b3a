package services

import "errors"

// Failure taxonomy. Every dependency failure inside a service maps to
// exactly one of these; they travel wrapped through the layers and the
// HTTP boundary collapses them to status codes with errors.Is. Finer
// detail (which cipher check failed, which query broke) is logged
// server-side and never exposed to callers.
var (
	ErrNotFound     = errors.New("referenced entity not found")
	ErrForbidden    = errors.New("process has not been shared with this supplier")
	ErrConflict     = errors.New("entity already exists")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrAttestation  = errors.New("share attestation failed")
	ErrStorage      = errors.New("storage operation failed")
)
