package errors

import "net/http"

// ErrorCode identifies a failure category. Codes are stable strings so they
// can be emitted as metric labels and matched by clients without parsing
// messages.
type ErrorCode string

func (c ErrorCode) String() string { return string(c) }

// Common error codes.
const (
	CodeOK           ErrorCode = "OK"
	CodeUnknown      ErrorCode = "UNKNOWN"
	CodeInternal     ErrorCode = "INTERNAL"
	CodeInvalidParam ErrorCode = "INVALID_PARAM"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeTimeout      ErrorCode = "TIMEOUT"
)

// Data-source error codes. Both source conditions are non-fatal: the
// coordinator degrades to the fallback collection and surfaces an advisory
// rather than failing the load.
const (
	// CodeSourceUnconfigured marks a missing endpoint or credential.
	CodeSourceUnconfigured ErrorCode = "SOURCE_UNCONFIGURED"

	// CodeSourceUnavailable marks a connectivity or query failure against a
	// configured data source.
	CodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"

	// CodeSourceBadPayload marks a response that could not be decoded at all.
	// Individual malformed rows never produce this; they normalize to defaults.
	CodeSourceBadPayload ErrorCode = "SOURCE_BAD_PAYLOAD"
)

// Seed/migration error codes used by the local development database path.
const (
	CodeMigrationFailed ErrorCode = "MIGRATION_FAILED"
	CodeSeedFailed      ErrorCode = "SEED_FAILED"
)

// HTTPStatus maps an ErrorCode to the HTTP status the interface layer should
// respond with. Unknown codes map to 500.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeSourceUnavailable, CodeSourceUnconfigured, CodeSourceBadPayload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
