package ted

import "fmt"

// Error kinds surfaced to callers.
const (
	ErrorKindQuery     = "QUERY_ERROR"
	ErrorKindTransport = "TRANSPORT_ERROR"
)

// Error is a structured search failure. Query rejections carry the offending
// parameter name and unsupported value when TED reports them, so the UI can
// show why a query was rejected rather than just that it failed.
type Error struct {
	Kind             string
	Message          string
	ParameterName    string
	UnsupportedValue string
	Status           int
}

func (e *Error) Error() string {
	if e.ParameterName != "" {
		return fmt.Sprintf("%s: %s (parameter %s, value %q)", e.Kind, e.Message, e.ParameterName, e.UnsupportedValue)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
