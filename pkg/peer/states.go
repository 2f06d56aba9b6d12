package peer

import "github.com/pion/webrtc/v4"

// ICEConnectionState represents the ICE connection state.
type ICEConnectionState int

const (
	ICEConnectionStateNew ICEConnectionState = iota
	ICEConnectionStateChecking
	ICEConnectionStateConnected
	ICEConnectionStateCompleted
	ICEConnectionStateFailed
	ICEConnectionStateDisconnected
	ICEConnectionStateClosed
)

func (s ICEConnectionState) String() string {
	switch s {
	case ICEConnectionStateNew:
		return "new"
	case ICEConnectionStateChecking:
		return "checking"
	case ICEConnectionStateConnected:
		return "connected"
	case ICEConnectionStateCompleted:
		return "completed"
	case ICEConnectionStateFailed:
		return "failed"
	case ICEConnectionStateDisconnected:
		return "disconnected"
	case ICEConnectionStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// parseICEConnectionState translates the engine's ICE connection state.
// ok is false for values this wrapper does not recognize.
func parseICEConnectionState(s webrtc.ICEConnectionState) (ICEConnectionState, bool) {
	switch s {
	case webrtc.ICEConnectionStateNew:
		return ICEConnectionStateNew, true
	case webrtc.ICEConnectionStateChecking:
		return ICEConnectionStateChecking, true
	case webrtc.ICEConnectionStateConnected:
		return ICEConnectionStateConnected, true
	case webrtc.ICEConnectionStateCompleted:
		return ICEConnectionStateCompleted, true
	case webrtc.ICEConnectionStateFailed:
		return ICEConnectionStateFailed, true
	case webrtc.ICEConnectionStateDisconnected:
		return ICEConnectionStateDisconnected, true
	case webrtc.ICEConnectionStateClosed:
		return ICEConnectionStateClosed, true
	default:
		return ICEConnectionStateNew, false
	}
}

// PeerConnectionState represents the aggregate connection state.
type PeerConnectionState int

const (
	PeerConnectionStateNew PeerConnectionState = iota
	PeerConnectionStateConnecting
	PeerConnectionStateConnected
	PeerConnectionStateDisconnected
	PeerConnectionStateFailed
	PeerConnectionStateClosed
)

func (s PeerConnectionState) String() string {
	switch s {
	case PeerConnectionStateNew:
		return "new"
	case PeerConnectionStateConnecting:
		return "connecting"
	case PeerConnectionStateConnected:
		return "connected"
	case PeerConnectionStateDisconnected:
		return "disconnected"
	case PeerConnectionStateFailed:
		return "failed"
	case PeerConnectionStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// parseConnectionState translates the engine's aggregate connection state.
// ok is false for values this wrapper does not recognize.
func parseConnectionState(s webrtc.PeerConnectionState) (PeerConnectionState, bool) {
	switch s {
	case webrtc.PeerConnectionStateNew:
		return PeerConnectionStateNew, true
	case webrtc.PeerConnectionStateConnecting:
		return PeerConnectionStateConnecting, true
	case webrtc.PeerConnectionStateConnected:
		return PeerConnectionStateConnected, true
	case webrtc.PeerConnectionStateDisconnected:
		return PeerConnectionStateDisconnected, true
	case webrtc.PeerConnectionStateFailed:
		return PeerConnectionStateFailed, true
	case webrtc.PeerConnectionStateClosed:
		return PeerConnectionStateClosed, true
	default:
		return PeerConnectionStateNew, false
	}
}

// SDPType represents the role of a session description.
type SDPType int

const (
	SDPTypeOffer SDPType = iota
	SDPTypeAnswer
	SDPTypeRollback
)

func (t SDPType) String() string {
	switch t {
	case SDPTypeOffer:
		return "offer"
	case SDPTypeAnswer:
		return "answer"
	case SDPTypeRollback:
		return "rollback"
	default:
		return "unknown"
	}
}

func (t SDPType) toEngine() webrtc.SDPType {
	switch t {
	case SDPTypeOffer:
		return webrtc.SDPTypeOffer
	case SDPTypeAnswer:
		return webrtc.SDPTypeAnswer
	default:
		return webrtc.SDPTypeRollback
	}
}

// SessionDescription is an opaque SDP payload tagged with its role.
type SessionDescription struct {
	Type SDPType
	SDP  string
}
