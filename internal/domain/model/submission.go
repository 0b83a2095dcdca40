package model

// SubmitOutcome tags the result of an order submission.
type SubmitOutcome int

const (
	SubmitSuccess SubmitOutcome = iota
	SubmitValidationFailed
	SubmitServerError
	SubmitNetworkError
)

func (o SubmitOutcome) String() string {
	switch o {
	case SubmitSuccess:
		return "success"
	case SubmitValidationFailed:
		return "validation_failed"
	case SubmitServerError:
		return "server_error"
	case SubmitNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// SubmitResult is the tagged outcome of submitting a draft.
// Order is set on success; Message carries the server or transport
// description on failure; Violations lists unmet preconditions.
type SubmitResult struct {
	Outcome    SubmitOutcome
	Order      *Order
	Degraded   bool
	Message    string
	Violations []string
}
