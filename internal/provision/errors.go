package provision

// ErrorKind is the closed set of failure classes the provisioning flow
// can surface. Classification happens once, where a failure enters the
// package; callers switch on Kind instead of re-inspecting payloads.
type ErrorKind int

const (
	// ErrValidation: required selection or amount missing; no network
	// call was made.
	ErrValidation ErrorKind = iota
	// ErrPoolExtraction: an existing-pool rejection carried no usable
	// pool address; fatal for the run.
	ErrPoolExtraction
	// ErrAPIRejection: any other structured API-level failure,
	// surfaced verbatim.
	ErrAPIRejection
	// ErrTransport: network or unknown failure, surfaced via its
	// string form.
	ErrTransport
	// ErrPrecondition: assembling was requested without a simulation
	// result or connected wallet; no network call was made.
	ErrPrecondition
	// ErrSubmission: the wallet/signing layer rejected the transaction
	// or the user cancelled; never retried automatically.
	ErrSubmission
)

func (k ErrorKind) String() string {
	switch k {
	case ErrValidation:
		return "validation"
	case ErrPoolExtraction:
		return "pool_extraction"
	case ErrAPIRejection:
		return "api_rejection"
	case ErrTransport:
		return "transport"
	case ErrPrecondition:
		return "precondition"
	case ErrSubmission:
		return "submission"
	}
	return "unknown"
}

// Error is a classified provisioning failure.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
