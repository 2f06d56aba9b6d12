// Package track wraps media tracks received from the remote peer.
package track

import (
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
)

// Remote is a media track received from the remote peer, handed to the
// track handler together with the transceiver it arrived on.
type Remote struct {
	track *webrtc.TrackRemote
}

// NewRemote wraps an engine remote track.
func NewRemote(t *webrtc.TrackRemote) *Remote {
	return &Remote{track: t}
}

// ID returns the track ID.
func (r *Remote) ID() string { return r.track.ID() }

// StreamID returns the ID of the stream the track belongs to.
func (r *Remote) StreamID() string { return r.track.StreamID() }

// Kind returns "audio" or "video".
func (r *Remote) Kind() string { return r.track.Kind().String() }

// SSRC returns the track's synchronization source.
func (r *Remote) SSRC() uint32 { return uint32(r.track.SSRC()) }

// Codec returns the negotiated codec MIME type, e.g. "audio/opus".
func (r *Remote) Codec() string { return r.track.Codec().MimeType }

// ReadRTP reads the next RTP packet from the track, blocking until one
// arrives or the track ends.
func (r *Remote) ReadRTP() (*rtp.Packet, error) {
	pkt, _, err := r.track.ReadRTP()
	return pkt, err
}
