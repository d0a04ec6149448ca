package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeDataNotFound       Code = "DATA_NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Fatal reports whether an error with this code should end the current battle.
// Missing content and internal failures cannot be recovered by the player.
func (c Code) Fatal() bool {
	switch c {
	case CodeDataNotFound, CodeInternal, CodeDataLoss:
		return true
	default:
		return false
	}
}
