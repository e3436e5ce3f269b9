package common

// DetailedError is the error shape returned to clients on every failed request
type DetailedError struct {
	Status          int    `json:"status"`  // Http status code
	ID              string `json:"id"`      // provided to clients so we can better track down issues
	Code            string `json:"code"`    // stable machine-readable code
	Message         string `json:"message"` // understandable message sent to the client
	InternalMessage string `json:"-"`       // used only for logging so we don't want to serialize it out
}

// SetInternalMessage sets the internal message that we will use for logging
func (d DetailedError) SetInternalMessage(internal error) DetailedError {
	d.InternalMessage = internal.Error()
	return d
}
