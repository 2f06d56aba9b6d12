package peer

import (
	"github.com/pion/webrtc/v4"
	"github.com/pkg/errors"
)

// MediaKind represents the media kind of a track or transceiver.
type MediaKind int

const (
	MediaKindAudio MediaKind = iota
	MediaKindVideo
)

func (k MediaKind) String() string {
	switch k {
	case MediaKindAudio:
		return "audio"
	case MediaKindVideo:
		return "video"
	default:
		return "unknown"
	}
}

func (k MediaKind) toEngine() webrtc.RTPCodecType {
	if k == MediaKindVideo {
		return webrtc.RTPCodecTypeVideo
	}
	return webrtc.RTPCodecTypeAudio
}

// TransceiverDirection represents the transceiver direction.
type TransceiverDirection int

const (
	TransceiverDirectionSendRecv TransceiverDirection = iota
	TransceiverDirectionSendOnly
	TransceiverDirectionRecvOnly
	TransceiverDirectionInactive
)

func (d TransceiverDirection) String() string {
	switch d {
	case TransceiverDirectionSendRecv:
		return "sendrecv"
	case TransceiverDirectionSendOnly:
		return "sendonly"
	case TransceiverDirectionRecvOnly:
		return "recvonly"
	case TransceiverDirectionInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

func (d TransceiverDirection) toEngine() webrtc.RTPTransceiverDirection {
	switch d {
	case TransceiverDirectionSendOnly:
		return webrtc.RTPTransceiverDirectionSendonly
	case TransceiverDirectionRecvOnly:
		return webrtc.RTPTransceiverDirectionRecvonly
	case TransceiverDirectionInactive:
		return webrtc.RTPTransceiverDirectionInactive
	default:
		return webrtc.RTPTransceiverDirectionSendrecv
	}
}

func directionFromEngine(d webrtc.RTPTransceiverDirection) TransceiverDirection {
	switch d {
	case webrtc.RTPTransceiverDirectionSendonly:
		return TransceiverDirectionSendOnly
	case webrtc.RTPTransceiverDirectionRecvonly:
		return TransceiverDirectionRecvOnly
	case webrtc.RTPTransceiverDirectionInactive:
		return TransceiverDirectionInactive
	default:
		return TransceiverDirectionSendRecv
	}
}

// Transceiver is a paired media sender and receiver associated with one
// negotiated media line of the engine's transceiver set.
type Transceiver struct {
	tr *webrtc.RTPTransceiver
}

// Mid returns the transceiver's media-line identifier. Empty until
// negotiation assigns one.
func (t *Transceiver) Mid() string { return t.tr.Mid() }

// Kind returns the transceiver's media kind.
func (t *Transceiver) Kind() MediaKind {
	if t.tr.Kind() == webrtc.RTPCodecTypeVideo {
		return MediaKindVideo
	}
	return MediaKindAudio
}

// Direction returns the transceiver's preferred direction.
func (t *Transceiver) Direction() TransceiverDirection {
	return directionFromEngine(t.tr.Direction())
}

// Stop irreversibly stops the transceiver.
func (t *Transceiver) Stop() error { return t.tr.Stop() }

// AddTransceiver creates a new transceiver of the given media kind with the
// given initial direction and adds it to the engine's live transceiver set.
// Duplicates of the same kind are permitted.
func (p *PeerConnection) AddTransceiver(kind MediaKind, direction TransceiverDirection) (*Transceiver, error) {
	if p.closed.Load() {
		return nil, ErrPeerConnectionClosed
	}

	tr, err := p.pc.AddTransceiverFromKind(kind.toEngine(), webrtc.RTPTransceiverInit{
		Direction: direction.toEngine(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "add transceiver")
	}

	return &Transceiver{tr: tr}, nil
}

// GetTransceiverByMid scans the engine's current transceiver set for one
// whose negotiated mid equals the argument. Returns nil if absent, e.g.
// before negotiation assigns mids. Results are never cached and always
// reflect live engine state.
func (p *PeerConnection) GetTransceiverByMid(mid string) *Transceiver {
	if p.closed.Load() {
		return nil
	}

	for _, tr := range p.pc.GetTransceivers() {
		if m := tr.Mid(); m != "" && m == mid {
			return &Transceiver{tr: tr}
		}
	}

	return nil
}
