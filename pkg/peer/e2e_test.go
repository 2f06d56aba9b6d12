package peer

import (
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"

	"github.com/50U10FCA7/medea-jason/internal/testutil"
	"github.com/50U10FCA7/medea-jason/pkg/track"
)

// TestAudioSessionEndToEnd negotiates two peers over loopback with trickled
// candidates and verifies that audio written on one side is delivered to the
// other side's track handler.
func TestAudioSessionEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping connectivity test in short mode")
	}
	testutil.RequireUDP(t)

	a, err := NewPeerConnection(Configuration{})
	if err != nil {
		t.Fatalf("NewPeerConnection() error = %v", err)
	}
	defer a.Close()

	b, err := NewPeerConnection(Configuration{})
	if err != nil {
		t.Fatalf("NewPeerConnection() error = %v", err)
	}
	defer b.Close()

	local, err := webrtc.NewTrackLocalStaticSample(webrtc.RTPCodecCapability{
		MimeType:  webrtc.MimeTypeOpus,
		ClockRate: 48000,
		Channels:  2,
	}, "audio", "session")
	if err != nil {
		t.Fatalf("NewTrackLocalStaticSample() error = %v", err)
	}
	if _, err := a.pc.AddTrack(local); err != nil {
		t.Fatalf("AddTrack() error = %v", err)
	}

	type incoming struct {
		remote      *track.Remote
		transceiver *Transceiver
	}
	gotTrack := make(chan incoming, 1)
	b.OnTrack(func(r *track.Remote, tr *Transceiver) {
		select {
		case gotTrack <- incoming{remote: r, transceiver: tr}:
		default:
		}
	})

	connected := make(chan struct{})
	b.OnConnectionStateChange(func(s PeerConnectionState) {
		if s == PeerConnectionStateConnected {
			select {
			case <-connected:
			default:
				close(connected)
			}
		}
	})

	offer, err := a.CreateOffer()
	if err != nil {
		t.Fatalf("CreateOffer() error = %v", err)
	}
	if err := b.SetRemoteDescription(SessionDescription{Type: SDPTypeOffer, SDP: offer}); err != nil {
		t.Fatalf("SetRemoteDescription(offer) error = %v", err)
	}

	// Each side trickles candidates once the other has a remote description.
	a.OnICECandidate(func(c ICECandidate) {
		if err := b.AddICECandidate(c); err != nil {
			t.Errorf("AddICECandidate() on answerer error = %v", err)
		}
	})
	if err := a.SetOffer(offer); err != nil {
		t.Fatalf("SetOffer() error = %v", err)
	}

	answer, err := b.CreateAnswer()
	if err != nil {
		t.Fatalf("CreateAnswer() error = %v", err)
	}
	if err := a.SetRemoteDescription(SessionDescription{Type: SDPTypeAnswer, SDP: answer}); err != nil {
		t.Fatalf("SetRemoteDescription(answer) error = %v", err)
	}
	b.OnICECandidate(func(c ICECandidate) {
		if err := a.AddICECandidate(c); err != nil {
			t.Errorf("AddICECandidate() on offerer error = %v", err)
		}
	})
	if err := b.SetAnswer(answer); err != nil {
		t.Fatalf("SetAnswer() error = %v", err)
	}

	if !testutil.WaitTimeout(connected, 15*time.Second) {
		t.Fatal("peers did not connect")
	}

	stopWriting := make(chan struct{})
	defer close(stopWriting)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopWriting:
				return
			case <-ticker.C:
				_ = local.WriteSample(media.Sample{
					Data:     []byte{0xde, 0xad, 0xbe, 0xef},
					Duration: 20 * time.Millisecond,
				})
			}
		}
	}()

	var in incoming
	select {
	case in = <-gotTrack:
	case <-time.After(15 * time.Second):
		t.Fatal("remote track never arrived")
	}

	if in.remote.Kind() != "audio" {
		t.Errorf("remote track kind = %q, want audio", in.remote.Kind())
	}
	if in.remote.Codec() != webrtc.MimeTypeOpus {
		t.Errorf("remote track codec = %q, want %q", in.remote.Codec(), webrtc.MimeTypeOpus)
	}
	if in.transceiver == nil {
		t.Fatal("track handler received a nil transceiver")
	}
	if in.transceiver.Mid() == "" {
		t.Error("negotiated transceiver has no mid")
	}

	pkt, err := in.remote.ReadRTP()
	if err != nil {
		t.Fatalf("ReadRTP() error = %v", err)
	}
	if pkt == nil || len(pkt.Payload) == 0 {
		t.Error("read an empty RTP packet")
	}

	stats, err := a.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.NominatedPairs == 0 {
		t.Error("connected peer reports no nominated candidate pair")
	}
}
