package generate

import "errors"

var (
	// ErrUpstreamCall wraps every failure of a generation back-end call.
	ErrUpstreamCall = errors.New("upstream call failed")
	// ErrNoAdapter is returned when no registered pattern matches a model id
	// and no fallback is set.
	ErrNoAdapter = errors.New("no adapter for model")
	// ErrEmptyReply marks a well-formed reply that carried no text block.
	ErrEmptyReply = errors.New("reply has no text")
	// ErrMissingAPIKey is returned when a client is built without credentials.
	ErrMissingAPIKey = errors.New("API key is required")
)

// UpstreamError is a failed back-end call for one model. It matches
// ErrUpstreamCall and unwraps to the back-end's own error.
type UpstreamError struct {
	Model string
	Err   error
}

func (e *UpstreamError) Error() string {
	return ErrUpstreamCall.Error() + ": " + e.Model + ": " + e.Err.Error()
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamCall }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Cause returns the back-end's message for err, without the model prefix,
// when err is an UpstreamError. Other errors are returned as they are.
func Cause(err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
