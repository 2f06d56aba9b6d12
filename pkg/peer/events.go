package peer

import (
	"github.com/pion/webrtc/v4"

	"github.com/50U10FCA7/medea-jason/pkg/track"
)

// ICECandidate is a locally discovered ICE candidate, or a remote one
// submitted through AddICECandidate. Only non-empty candidates are ever
// delivered to handlers; the engine's end-of-gathering sentinel is consumed
// internally.
type ICECandidate struct {
	Candidate     string
	SDPMLineIndex *uint16
	SDPMid        *string
}

// OnTrack sets the handler invoked when the engine receives a new track from
// the remote peer, together with the transceiver the track arrived on.
// Passing nil releases the current binding; passing a function replaces it.
func (p *PeerConnection) OnTrack(f func(*track.Remote, *Transceiver)) {
	p.handlerMu.Lock()
	p.onTrack = f
	p.handlerMu.Unlock()
}

// OnICECandidate sets the handler invoked for every non-empty ICE candidate
// the engine discovers. Passing nil releases the current binding; passing a
// function replaces it.
func (p *PeerConnection) OnICECandidate(f func(ICECandidate)) {
	p.handlerMu.Lock()
	p.onICECandidate = f
	p.handlerMu.Unlock()
}

// OnICEConnectionStateChange sets the handler invoked whenever the ICE
// connection state changes. Passing nil releases the current binding;
// passing a function replaces it.
func (p *PeerConnection) OnICEConnectionStateChange(f func(ICEConnectionState)) {
	p.handlerMu.Lock()
	p.onICEConnectionStateChange = f
	p.handlerMu.Unlock()
}

// OnConnectionStateChange sets the handler invoked whenever the aggregate
// connection state changes. Passing nil releases the current binding;
// passing a function replaces it. Unrecognized engine states are logged and
// not delivered.
func (p *PeerConnection) OnConnectionStateChange(f func(PeerConnectionState)) {
	p.handlerMu.Lock()
	p.onConnectionStateChange = f
	p.handlerMu.Unlock()
}

// bindEngineEvents registers the engine callbacks once, for the lifetime of
// the handle. Each callback reads the current handler slot at dispatch time
// and drops the event when the handle is closed or the slot is empty.
func (p *PeerConnection) bindEngineEvents() {
	p.pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if p.closed.Load() {
			return
		}
		if c == nil {
			// The nil candidate means all ICE transports finished gathering.
			// It is never delivered onward.
			p.log.Tracef("peer %s: candidate gathering complete", p.id)
			return
		}

		p.handlerMu.RLock()
		f := p.onICECandidate
		p.handlerMu.RUnlock()
		if f == nil {
			return
		}

		init := c.ToJSON()
		f(ICECandidate{
			Candidate:     init.Candidate,
			SDPMLineIndex: init.SDPMLineIndex,
			SDPMid:        init.SDPMid,
		})
	})

	p.pc.OnICEConnectionStateChange(func(s webrtc.ICEConnectionState) {
		if p.closed.Load() {
			return
		}

		state, ok := parseICEConnectionState(s)
		if !ok {
			p.log.Warnf("peer %s: unknown ICE connection state %q", p.id, s)
			return
		}

		p.handlerMu.RLock()
		f := p.onICEConnectionStateChange
		p.handlerMu.RUnlock()
		if f != nil {
			f(state)
		}
	})

	p.pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		if p.closed.Load() {
			return
		}

		state, ok := parseConnectionState(s)
		if !ok {
			p.log.Errorf("peer %s: unknown connection state %q", p.id, s)
			return
		}

		p.handlerMu.RLock()
		f := p.onConnectionStateChange
		p.handlerMu.RUnlock()
		if f != nil {
			f(state)
		}
	})

	p.pc.OnTrack(func(tr *webrtc.TrackRemote, receiver *webrtc.RTPReceiver) {
		if p.closed.Load() {
			return
		}

		p.handlerMu.RLock()
		f := p.onTrack
		p.handlerMu.RUnlock()
		if f == nil {
			return
		}

		f(track.NewRemote(tr), p.transceiverFor(receiver))
	})
}

// transceiverFor resolves the transceiver a remote track arrived on by
// scanning the engine's live transceiver set.
func (p *PeerConnection) transceiverFor(receiver *webrtc.RTPReceiver) *Transceiver {
	for _, tr := range p.pc.GetTransceivers() {
		if tr.Receiver() == receiver {
			return &Transceiver{tr: tr}
		}
	}

	p.log.Warnf("peer %s: no transceiver for incoming track", p.id)
	return nil
}
