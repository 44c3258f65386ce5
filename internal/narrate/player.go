package narrate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/recipex/internal/logger"
)

// ErrBadWAV is returned for audio that is not a PCM RIFF/WAVE payload.
var ErrBadWAV = errors.New("narrate: malformed wav")

const pollInterval = 10 * time.Millisecond

// Player plays WAV clips on the default audio device, one at a time.
type Player struct {
	device *oto.Context
	log    *logger.Logger

	mu   sync.Mutex
	stop chan struct{} // closed by Stop; nil when idle
}

// NewPlayer opens the audio device. Returns an error if none is available.
func NewPlayer(log *logger.Logger) (*Player, error) {
	device, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("narrate: open audio device: %w", err)
	}
	<-ready

	log.Debug("audio device ready (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{device: device, log: log}, nil
}

// Play blocks until the clip ends or Stop is called. An interrupted clip is
// not an error.
func (p *Player) Play(wav []byte) error {
	pcm, err := extractPCM(wav)
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	p.mu.Lock()
	p.stop = stop
	p.mu.Unlock()
	defer p.release(stop)

	clip := p.device.NewPlayer(bytes.NewReader(pcm))
	clip.Play()

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for clip.IsPlaying() {
		select {
		case <-stop:
			clip.Pause()
			return clip.Close()
		case <-tick.C:
		}
	}
	return clip.Close()
}

// Stop interrupts the clip being played, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	stop := p.stop
	p.stop = nil
	p.mu.Unlock()

	if stop != nil {
		close(stop)
		p.log.Debug("playback interrupted")
	}
}

func (p *Player) release(stop chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == stop {
		p.stop = nil
	}
}

// extractPCM returns the payload of the WAV "data" chunk.
func extractPCM(wav []byte) ([]byte, error) {
	const header = 12
	if len(wav) < header+8 || !bytes.Equal(wav[0:4], []byte("RIFF")) || !bytes.Equal(wav[8:12], []byte("WAVE")) {
		return nil, ErrBadWAV
	}

	for rest := wav[header:]; len(rest) >= 8; {
		id, size := string(rest[:4]), int(binary.LittleEndian.Uint32(rest[4:8]))
		body := rest[8:]
		if id == "data" {
			return body[:min(size, len(body))], nil
		}
		// Chunks are word-aligned.
		skip := size + size%2
		if skip > len(body) {
			break
		}
		rest = body[skip:]
	}
	return nil, fmt.Errorf("%w: no data chunk", ErrBadWAV)
}
