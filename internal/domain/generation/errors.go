package generation

import "errors"

// ErrServiceUnavailable indicates the inference server refused the connection.
// The message doubles as the user-facing remediation hint.
var ErrServiceUnavailable = errors.New("inference service unreachable: start the inference service (e.g. `ollama serve`) and try again")

// GatewayError wraps any other transport or protocol failure from the
// inference call (timeout, non-2xx status, malformed response).
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return "ai gateway: " + e.Op + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }
