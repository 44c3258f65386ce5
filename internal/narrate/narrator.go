// Package narrate reads the open recipe aloud: the title and each step are
// split into sentence chunks, synthesized in parallel through a cache, and
// played back strictly in order.
package narrate

import (
	"context"
	"errors"
	"sync"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Narrator = (*Narrator)(nil)
	_ domain.Narrator = (*NoOp)(nil)
	_ Synthesizer     = (*AzureClient)(nil)
	_ Sink            = (*Player)(nil)
)

// ErrNothingToRead is returned for a recipe with no title and no steps.
var ErrNothingToRead = errors.New("narrate: nothing to read")

// Synthesizer turns text into WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Voice() string
}

// Sink plays WAV audio. Play blocks until done; Stop interrupts it.
type Sink interface {
	Play(wav []byte) error
	Stop()
}

// Option configures the Narrator.
type Option func(*Narrator)

// WithChunkSize sets the approximate max characters per synthesis request.
func WithChunkSize(size int) Option {
	return func(n *Narrator) { n.chunkSize = size }
}

// WithCacheDir enables the on-disk audio cache under dir.
func WithCacheDir(dir string) Option {
	return func(n *Narrator) { n.cacheDir = dir }
}

// WithParallelism caps concurrent synthesis requests.
func WithParallelism(p int) Option {
	return func(n *Narrator) { n.parallelism = p }
}

// Narrator reads one recipe at a time. Starting a new reading or calling
// Stop cancels the current one.
type Narrator struct {
	tts         Synthesizer
	sink        Sink
	log         *logger.Logger
	cache       *AudioCache
	chunkSize   int
	cacheDir    string
	parallelism int

	mu       sync.Mutex
	cancel   context.CancelFunc
	reading  uint64
	speaking bool
}

// New creates a narrator that synthesizes with tts and plays through sink.
func New(tts Synthesizer, sink Sink, log *logger.Logger, opts ...Option) *Narrator {
	n := &Narrator{
		tts:         tts,
		sink:        sink,
		log:         log,
		chunkSize:   DefaultChunkSize,
		parallelism: 4,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.parallelism < 1 {
		n.parallelism = 1
	}
	n.cache = NewAudioCache(tts.Voice(), n.cacheDir, log)
	return n
}

// Enabled reports true: this narrator has a voice and an audio device.
func (n *Narrator) Enabled() bool { return true }

// Speaking reports whether a reading is in progress.
func (n *Narrator) Speaking() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.speaking
}

// Cache exposes the audio cache for stats.
func (n *Narrator) Cache() *AudioCache { return n.cache }

// Read speaks recipe and blocks until it finishes, is stopped, or ctx is
// done. A stopped reading returns nil. Chunks that fail to synthesize are
// skipped; an error is returned only when nothing could be played.
func (n *Narrator) Read(ctx context.Context, recipe *domain.Recipe) error {
	var chunks []string
	for _, line := range Script(recipe) {
		chunks = append(chunks, splitChunks(line, n.chunkSize)...)
	}
	if len(chunks) == 0 {
		return ErrNothingToRead
	}

	ctx, id := n.begin(ctx)
	defer n.end(id)

	n.log.Info("reading recipe %d (%d chunks)", recipe.ID, len(chunks))

	slots := n.synthesizeAll(ctx, chunks)

	var firstErr error
	played := 0
	for i, slot := range slots {
		var r synthResult
		select {
		case <-ctx.Done():
			return nil
		case r = <-slot:
		}
		if r.err != nil {
			n.log.Error("chunk %d synthesis failed: %v", i, r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		if err := n.sink.Play(r.audio); err != nil {
			n.log.Error("chunk %d playback failed: %v", i, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		played++
	}

	if played == 0 && firstErr != nil {
		return firstErr
	}
	return nil
}

// Stop interrupts the current reading, if any.
func (n *Narrator) Stop() {
	n.mu.Lock()
	cancel := n.cancel
	n.cancel = nil
	n.mu.Unlock()

	if cancel != nil {
		cancel()
		n.sink.Stop()
		n.log.Debug("reading stopped")
	}
}

// begin cancels any previous reading and starts a new one.
func (n *Narrator) begin(parent context.Context) (context.Context, uint64) {
	n.Stop()

	ctx, cancel := context.WithCancel(parent)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reading++
	n.cancel = cancel
	n.speaking = true
	return ctx, n.reading
}

func (n *Narrator) end(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if id != n.reading {
		return
	}
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.speaking = false
}

type synthResult struct {
	audio []byte
	err   error
}

// synthesizeAll starts synthesis for every chunk, at most parallelism at a
// time, and returns one result channel per chunk in order.
func (n *Narrator) synthesizeAll(ctx context.Context, chunks []string) []chan synthResult {
	slots := make([]chan synthResult, len(chunks))
	sem := make(chan struct{}, n.parallelism)

	for i, text := range chunks {
		slots[i] = make(chan synthResult, 1)
		go func(out chan<- synthResult, text string) {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				out <- synthResult{err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			audio, err := n.synthesize(ctx, text)
			out <- synthResult{audio: audio, err: err}
		}(slots[i], text)
	}
	return slots
}

func (n *Narrator) synthesize(ctx context.Context, text string) ([]byte, error) {
	if audio, ok := n.cache.Get(text); ok {
		return audio, nil
	}
	audio, err := n.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	n.cache.Put(text, audio)
	return audio, nil
}
