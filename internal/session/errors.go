package session

import "errors"

var (
	ErrUnknownState     = errors.New("unknown protocol state")
	ErrInvalidNextState = errors.New("invalid handshake next state")
	ErrSessionClosed    = errors.New("session closed")
)
