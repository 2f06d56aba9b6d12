package peer

import "github.com/pkg/errors"

// Errors
var (
	ErrPeerConnectionClosed = errors.New("peer connection closed")
	ErrPeerCreation         = errors.New("peer connection creation failed")
	ErrCreateOffer          = errors.New("create offer failed")
	ErrCreateAnswer         = errors.New("create answer failed")
	ErrSetLocalDescription  = errors.New("set local description failed")
	ErrSetRemoteDescription = errors.New("set remote description failed")
	ErrAddICECandidate      = errors.New("add ice candidate failed")
	ErrGetStats             = errors.New("get stats failed")
	ErrStatsParse           = errors.New("stats report parse failed")
)

func errUnsupportedSDPType(t SDPType) error {
	return errors.Errorf("unsupported sdp type %q", t)
}

// wrapErr ties an operation's error kind to the engine error that caused it.
// errors.Is matches the kind, errors.Unwrap reaches the engine error.
func wrapErr(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &peerError{kind: kind, cause: cause}
}

type peerError struct {
	kind  error
	cause error
}

func (e *peerError) Error() string { return e.kind.Error() + ": " + e.cause.Error() }

func (e *peerError) Unwrap() error { return e.cause }

func (e *peerError) Is(target error) bool { return target == e.kind }
