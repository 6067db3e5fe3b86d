// Package response renders the fixed API envelopes:
// {"status":"success","message":...,"data":...} and
// {"status":"error","message":...,"errors":...}.
package response

type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(message string, data interface{}) Envelope {
	return Envelope{Status: "success", Message: message, Data: data}
}

func Error(message string) Envelope {
	return Envelope{Status: "error", Message: message}
}

// ValidationError carries per-field messages alongside the summary.
func ValidationError(message string, errs interface{}) Envelope {
	return Envelope{Status: "error", Message: message, Errors: errs}
}
