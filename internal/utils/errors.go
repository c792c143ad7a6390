package utils

// Error codes used in JSON error envelopes.
const (
	CodeCSRFInvalid = "CSRF_INVALID"
)
