package peer

import (
	"github.com/pion/webrtc/v4"
	"github.com/pkg/errors"
)

// RTCStats is the wrapper's aggregate view of one engine statistics
// snapshot. Byte, packet and RTT figures come from the nominated ICE
// candidate pair(s); candidate and pair counts cover the whole report.
type RTCStats struct {
	TimestampUs int64

	BytesSent       uint64
	BytesReceived   uint64
	PacketsSent     uint64
	PacketsReceived uint64

	CurrentRTTMs             float64
	TotalRTTMs               float64
	AvailableOutgoingBitrate float64
	AvailableIncomingBitrate float64
	ResponsesReceived        uint64

	LocalCandidates  int
	RemoteCandidates int
	CandidatePairs   int
	NominatedPairs   int

	DataChannelsOpened uint32
	DataChannelsClosed uint32
}

// GetStats requests a statistics snapshot from the engine and parses it into
// the wrapper's report shape. Fails with ErrGetStats when the engine rejects
// the request and with ErrStatsParse when the report cannot be interpreted.
func (p *PeerConnection) GetStats() (*RTCStats, error) {
	if p.closed.Load() {
		return nil, wrapErr(ErrGetStats, ErrPeerConnectionClosed)
	}

	stats, err := parseStatsReport(p.pc.GetStats())
	if err != nil {
		return nil, wrapErr(ErrStatsParse, err)
	}

	return stats, nil
}

func parseStatsReport(report webrtc.StatsReport) (*RTCStats, error) {
	if len(report) == 0 {
		return nil, errors.New("empty stats report")
	}

	out := &RTCStats{}
	havePeerStats := false

	for _, entry := range report {
		switch s := entry.(type) {
		case webrtc.PeerConnectionStats:
			havePeerStats = true
			out.TimestampUs = int64(float64(s.Timestamp) * 1000)
			out.DataChannelsOpened = s.DataChannelsOpened
			out.DataChannelsClosed = s.DataChannelsClosed

		case webrtc.ICECandidatePairStats:
			out.CandidatePairs++
			if !s.Nominated {
				continue
			}
			out.NominatedPairs++
			out.BytesSent += s.BytesSent
			out.BytesReceived += s.BytesReceived
			out.PacketsSent += uint64(s.PacketsSent)
			out.PacketsReceived += uint64(s.PacketsReceived)
			out.CurrentRTTMs = s.CurrentRoundTripTime * 1000
			out.TotalRTTMs = s.TotalRoundTripTime * 1000
			out.AvailableOutgoingBitrate = s.AvailableOutgoingBitrate
			out.AvailableIncomingBitrate = s.AvailableIncomingBitrate
			out.ResponsesReceived += s.ResponsesReceived

		case webrtc.ICECandidateStats:
			switch s.Type {
			case webrtc.StatsTypeLocalCandidate:
				out.LocalCandidates++
			case webrtc.StatsTypeRemoteCandidate:
				out.RemoteCandidates++
			}
		}
	}

	if !havePeerStats {
		return nil, errors.New("report has no peer-connection entry")
	}

	return out, nil
}
