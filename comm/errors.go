package comm

import "errors"

var (
	// ErrClosed is returned by any call on a communicator after Close.
	ErrClosed = errors.New("comm: communicator closed")

	// ErrAborted is returned by blocked collectives when another rank of the
	// group failed and the group was torn down.
	ErrAborted = errors.New("comm: group aborted")

	// ErrInvalidGroup indicates a group size smaller than one.
	ErrInvalidGroup = errors.New("comm: group size must be >= 1")

	// ErrInvalidRank indicates a rank outside [0, size).
	ErrInvalidRank = errors.New("comm: rank out of range")

	// ErrInvalidRoot indicates a root rank outside [0, size) or one the
	// implementation cannot serve as a hub.
	ErrInvalidRoot = errors.New("comm: invalid root rank")

	// ErrCountMismatch indicates that the element count of a message does not
	// match the buffer, counts or displacements supplied by the receiver.
	ErrCountMismatch = errors.New("comm: element count mismatch")

	// ErrProtocol indicates an unexpected frame on the wire.
	ErrProtocol = errors.New("comm: protocol violation")
)
