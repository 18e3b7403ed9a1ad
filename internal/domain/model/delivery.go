package model

import "errors"

// DeliveryResult is the chat service's acknowledgement of a posted message.
type DeliveryResult struct {
	OK    bool
	Error string // Service-provided description when OK is false.
}

// Err converts a failed acknowledgement into an error carrying the service's
// description verbatim. It returns nil when the message was accepted.
func (r DeliveryResult) Err() error {
	if r.OK {
		return nil
	}
	if r.Error == "" {
		return errors.New("chat service rejected the message")
	}
	return errors.New(r.Error)
}
