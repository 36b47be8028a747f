package model

// ConnectionResult is the uniform outcome of a connection diagnosis call.
// A failed diagnosis always carries a message classifying which part of
// the configuration is wrong (URL, target identifier, or credentials) so
// a configuration UI can point at the field to fix. A successful
// diagnosis carries no message.
type ConnectionResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ConnectionOK is the successful diagnosis outcome.
func ConnectionOK() ConnectionResult {
	return ConnectionResult{OK: true}
}

// ConnectionFailure builds a failed diagnosis outcome with the given
// classification message.
func ConnectionFailure(message string) ConnectionResult {
	return ConnectionResult{OK: false, Message: message}
}
