package main

import (
	"github.com/ebitengine/oto/v3"

	"github.com/retrocore/spc700/spc700"
)

const (
	sampleRate    = 32000
	channelCount  = 2
	otoBufferSize = 4096 // bytes; ~32ms at 32kHz stereo 16-bit
)

// trackSource adapts a *spc700.Player into the io.Reader oto.Player pulls
// PCM from. Each Read is one call into the buffer-limited branch of
// Player.Run ("buffer size is the limiting factor"), so oto's own pull
// cadence drives the emulator rather than a separate render loop.
type trackSource struct {
	player *spc700.Player
}

func (s *trackSource) Read(p []byte) (int, error) {
	n := s.player.Run(-1, p)
	if n < len(p) {
		for i := n; i < len(p); i++ {
			p[i] = 0
		}
		n = len(p)
	}
	return n, nil
}

// openAudioDevice opens the default output device for spec §6's fixed
// format: little-endian interleaved stereo 16-bit PCM at 32kHz.
func openAudioDevice(src *trackSource) (*oto.Context, *oto.Player, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   otoBufferSize,
	}
	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, nil, err
	}
	<-ready
	return ctx, ctx.NewPlayer(src), nil
}
