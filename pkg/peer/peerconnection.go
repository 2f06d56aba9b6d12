// Package peer provides a negotiation-oriented wrapper around the pion
// WebRTC engine's PeerConnection: offer/answer/ICE-restart/rollback,
// transceiver lifetime, stats and single-slot event subscription with
// deterministic teardown.
package peer

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pion/logging"
	"github.com/pion/webrtc/v4"

	"github.com/50U10FCA7/medea-jason/pkg/track"
)

// ICEServer describes one STUN/TURN server the engine may use.
type ICEServer struct {
	URLs       []string
	Username   string
	Credential string
}

// Configuration for PeerConnection.
type Configuration struct {
	// ICEServers is the ordered server list handed to the engine.
	ICEServers []ICEServer

	// ForceRelay restricts ICE to relay (TURN) candidates only.
	ForceRelay bool

	// LoggerFactory for logging. If nil, the default factory is used.
	LoggerFactory logging.LoggerFactory
}

// PeerConnection wraps one engine PeerConnection for a single media session.
//
// Negotiation calls are not serialized against each other: overlapping calls
// on one handle (e.g. two concurrent CreateOffer) go straight to the engine
// and their outcome is engine-defined. Callers drive negotiation in protocol
// order.
type PeerConnection struct {
	id  string
	pc  *webrtc.PeerConnection
	log logging.LeveledLogger

	mu         sync.Mutex // guards iceRestart
	iceRestart bool

	// Single replaceable handler slot per event kind. Engine callbacks are
	// bound once at construction and read the current slot value at dispatch
	// time, so replacing a handler is a value swap and a replaced handler
	// never fires again.
	handlerMu                  sync.RWMutex
	onTrack                    func(*track.Remote, *Transceiver)
	onICECandidate             func(ICECandidate)
	onICEConnectionStateChange func(ICEConnectionState)
	onConnectionStateChange    func(PeerConnectionState)

	closed atomic.Bool
}

// engineConfiguration builds the engine configuration: all media bundled on
// one transport, relay-only ICE when forced, the given servers in order.
func engineConfiguration(config Configuration) webrtc.Configuration {
	policy := webrtc.ICETransportPolicyAll
	if config.ForceRelay {
		policy = webrtc.ICETransportPolicyRelay
	}

	servers := make([]webrtc.ICEServer, 0, len(config.ICEServers))
	for _, s := range config.ICEServers {
		server := webrtc.ICEServer{URLs: s.URLs, Username: s.Username}
		if s.Credential != "" {
			server.Credential = s.Credential
		}
		servers = append(servers, server)
	}

	return webrtc.Configuration{
		ICEServers:         servers,
		ICETransportPolicy: policy,
		BundlePolicy:       webrtc.BundlePolicyMaxBundle,
	}
}

// NewPeerConnection instantiates the engine with the given configuration and
// binds the event dispatch. Fails with ErrPeerCreation if the engine rejects
// instantiation; no other construction failure mode exists.
func NewPeerConnection(config Configuration) (*PeerConnection, error) {
	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	settings := webrtc.SettingEngine{LoggerFactory: loggerFactory}
	api := webrtc.NewAPI(webrtc.WithSettingEngine(settings))

	engine, err := api.NewPeerConnection(engineConfiguration(config))
	if err != nil {
		return nil, wrapErr(ErrPeerCreation, err)
	}

	p := &PeerConnection{
		id:  uuid.NewString()[:8],
		pc:  engine,
		log: loggerFactory.NewLogger("peer"),
	}
	p.bindEngineEvents()

	p.log.Debugf("peer %s: created (force_relay=%t, ice_servers=%d)",
		p.id, config.ForceRelay, len(config.ICEServers))

	return p, nil
}

// RestartIce marks the connection to trigger ICE restart. The next
// CreateOffer call requests an offer with ICE-restart semantics; the engine
// is untouched until then.
func (p *PeerConnection) RestartIce() {
	p.mu.Lock()
	p.iceRestart = true
	p.mu.Unlock()
}

// CreateOffer obtains an SDP offer from the engine. A pending ICE restart is
// consumed by the attempt whether or not the engine succeeds, so a failed
// restart offer does not silently re-arm.
func (p *PeerConnection) CreateOffer() (string, error) {
	if p.closed.Load() {
		return "", ErrPeerConnectionClosed
	}

	p.mu.Lock()
	restart := p.iceRestart
	p.iceRestart = false
	p.mu.Unlock()

	var options *webrtc.OfferOptions
	if restart {
		options = &webrtc.OfferOptions{ICERestart: true}
	}

	offer, err := p.pc.CreateOffer(options)
	if err != nil {
		return "", wrapErr(ErrCreateOffer, err)
	}

	return offer.SDP, nil
}

// CreateAnswer obtains an SDP answer from the engine. Valid only after a
// remote offer has been applied; the engine rejects it otherwise.
func (p *PeerConnection) CreateAnswer() (string, error) {
	if p.closed.Load() {
		return "", ErrPeerConnectionClosed
	}

	answer, err := p.pc.CreateAnswer(nil)
	if err != nil {
		return "", wrapErr(ErrCreateAnswer, err)
	}

	return answer.SDP, nil
}

func (p *PeerConnection) setLocalDescription(sdpType webrtc.SDPType, sdp string) error {
	if p.closed.Load() {
		return ErrPeerConnectionClosed
	}

	err := p.pc.SetLocalDescription(webrtc.SessionDescription{Type: sdpType, SDP: sdp})
	if err != nil {
		return wrapErr(ErrSetLocalDescription, err)
	}

	return nil
}

// SetOffer sets the provided SDP offer as the local description.
func (p *PeerConnection) SetOffer(sdp string) error {
	return p.setLocalDescription(webrtc.SDPTypeOffer, sdp)
}

// SetAnswer sets the provided SDP answer as the local description.
func (p *PeerConnection) SetAnswer(sdp string) error {
	return p.setLocalDescription(webrtc.SDPTypeAnswer, sdp)
}

// Rollback reverts a not-yet-completed offer/answer exchange to the previous
// stable state by setting a rollback local description. Shares its failure
// kind with SetOffer/SetAnswer since it is the same underlying operation.
func (p *PeerConnection) Rollback() error {
	return p.setLocalDescription(webrtc.SDPTypeRollback, "")
}

// SetRemoteDescription applies a tagged offer or answer as the remote
// description. Only the offer and answer roles are admissible.
func (p *PeerConnection) SetRemoteDescription(desc SessionDescription) error {
	if p.closed.Load() {
		return ErrPeerConnectionClosed
	}

	switch desc.Type {
	case SDPTypeOffer, SDPTypeAnswer:
	default:
		return wrapErr(ErrSetRemoteDescription, errUnsupportedSDPType(desc.Type))
	}

	err := p.pc.SetRemoteDescription(webrtc.SessionDescription{
		Type: desc.Type.toEngine(),
		SDP:  desc.SDP,
	})
	if err != nil {
		return wrapErr(ErrSetRemoteDescription, err)
	}

	return nil
}

// AddICECandidate hands a remote candidate to the engine for incorporation
// into the in-progress ICE negotiation. Candidate ordering and queuing
// before a remote description is present is the engine's responsibility.
func (p *PeerConnection) AddICECandidate(c ICECandidate) error {
	if p.closed.Load() {
		return ErrPeerConnectionClosed
	}

	err := p.pc.AddICECandidate(webrtc.ICECandidateInit{
		Candidate:     c.Candidate,
		SDPMLineIndex: c.SDPMLineIndex,
		SDPMid:        c.SDPMid,
	})
	if err != nil {
		return wrapErr(ErrAddICECandidate, err)
	}

	return nil
}

// ICEConnectionState returns the engine's current ICE connection state. An
// unrecognized engine value is logged and reported as new, meaning no
// information.
func (p *PeerConnection) ICEConnectionState() ICEConnectionState {
	state, ok := parseICEConnectionState(p.pc.ICEConnectionState())
	if !ok {
		p.log.Warnf("peer %s: unknown ICE connection state %q", p.id, p.pc.ICEConnectionState())
	}
	return state
}

// ConnectionState returns the engine's current aggregate connection state.
// ok is false when the engine reports a state this wrapper does not
// recognize; callers treat that as no information, not an error.
func (p *PeerConnection) ConnectionState() (PeerConnectionState, bool) {
	return parseConnectionState(p.pc.ConnectionState())
}

// Close releases all listener bindings, detaches the engine callbacks and
// then closes the engine, in that order: no handler observes an event
// emitted after teardown begins. Idempotent.
func (p *PeerConnection) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.handlerMu.Lock()
	p.onTrack = nil
	p.onICECandidate = nil
	p.onICEConnectionStateChange = nil
	p.onConnectionStateChange = nil
	p.handlerMu.Unlock()

	p.pc.OnTrack(nil)
	p.pc.OnICECandidate(nil)
	p.pc.OnICEConnectionStateChange(nil)
	p.pc.OnConnectionStateChange(nil)

	err := p.pc.Close()
	p.log.Debugf("peer %s: closed", p.id)

	return err
}
