package core

// Error codes for domain errors. identity_required and record_corrupt are
// silent failure classes: they surface in logs, never to the offending peer.
const (
	ErrCodeIdentityRequired = "identity_required"
	ErrCodeStoreUnavailable = "store_unavailable"
	ErrCodeRecordCorrupt    = "record_corrupt"
	ErrCodeMessageTooLarge  = "message_too_large"
	ErrCodeBadRequest       = "bad_request"
)

// RelayError wraps a code and human-readable message for error events.
type RelayError struct {
	Code    string
	Message string
}

func (e *RelayError) Error() string {
	return e.Message
}

func relayError(code, msg string) *RelayError {
	return &RelayError{Code: code, Message: msg}
}
