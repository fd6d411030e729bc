package delegate

import "errors"

var (
	// ErrNotRegistered means a request arrived for an (actor id, message
	// type id) pair nobody registered a LocalInvoker for.
	ErrNotRegistered = errors.New("delegate: not registered")

	// ErrPeerUnknown means the directory could not find an address for a
	// system name.
	ErrPeerUnknown = errors.New("delegate: peer unknown")
)
