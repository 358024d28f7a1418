package palette

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"colorbook/internal/colors"
)

// DefaultTimeout bounds a single remote load.
const DefaultTimeout = 10 * time.Second

// Config configures a Provider. Zero values select the defaults.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

// Provider acquires the palette and holds the active color selection.
//
// Each Load makes exactly one request. A newer Load supersedes an older one
// still in flight, and nothing is committed once Close has been called.
type Provider struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client

	life context.Context
	stop context.CancelFunc

	mu       sync.Mutex
	palette  Palette
	outcome  Outcome
	loaded   bool
	active   colors.Color
	gen      uint64
	inflight context.CancelFunc
	closed   bool
}

// NewProvider returns a provider with an empty palette and the default
// active color.
func NewProvider(cfg Config) *Provider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	life, stop := context.WithCancel(context.Background())
	return &Provider{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		client:   cfg.Client,
		life:     life,
		stop:     stop,
		active:   colors.Default,
	}
}

// Load fetches the remote palette once. Any failure yields the fallback
// palette with outcome Fallback; Load never fails. The result becomes the
// provider's current palette unless a newer Load started meanwhile, ctx was
// cancelled, or the provider was closed.
func (p *Provider) Load(ctx context.Context) (Palette, Outcome) {
	pal, outcome, _ := p.load(ctx)
	return pal, outcome
}

// LoadAsync runs Load on its own goroutine and calls done with the result
// only if it was committed. done runs on that goroutine.
func (p *Provider) LoadAsync(ctx context.Context, done func(Palette, Outcome)) {
	go func() {
		pal, outcome, committed := p.load(ctx)
		if committed && done != nil {
			done(pal, outcome)
		}
	}()
}

func (p *Provider) load(ctx context.Context) (Palette, Outcome, bool) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return FallbackPalette(), Fallback, false
	}
	if p.inflight != nil {
		p.inflight()
	}
	p.gen++
	gen := p.gen
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	p.inflight = cancel
	p.mu.Unlock()

	unhook := context.AfterFunc(p.life, cancel)
	defer unhook()
	defer cancel()

	pal, err := fetch(reqCtx, p.client, p.endpoint)
	outcome := Success
	if err != nil {
		log.Printf("[PALETTE] load from %s failed, using fallback: %v", p.endpoint, err)
		pal, outcome = FallbackPalette(), Fallback
	}

	return pal, outcome, p.commit(ctx, gen, pal, outcome)
}

func (p *Provider) commit(ctx context.Context, gen uint64, pal Palette, outcome Outcome) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || gen != p.gen || ctx.Err() != nil {
		log.Printf("[PALETTE] discarding %s result of load %d", outcome, gen)
		return false
	}
	p.palette = pal
	p.outcome = outcome
	p.loaded = true
	p.inflight = nil
	log.Printf("[PALETTE] loaded %d colors (%s)", len(pal), outcome)
	return true
}

// Current returns a copy of the committed palette. loaded is false until a
// load has been committed, in which case the palette is empty.
func (p *Provider) Current() (pal Palette, outcome Outcome, loaded bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pal = make(Palette, len(p.palette))
	copy(pal, p.palette)
	return pal, p.outcome, p.loaded
}

// SelectColor sets the active color. The value need not be in the palette.
func (p *Provider) SelectColor(c colors.Color) {
	p.mu.Lock()
	p.active = c
	p.mu.Unlock()
}

// ActiveColor returns the current selection, red until something is selected.
func (p *Provider) ActiveColor() colors.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Close tears the provider down. In-flight loads are cancelled and their
// results discarded. Close is idempotent.
func (p *Provider) Close() {
	p.mu.Lock()
	p.closed = true
	p.inflight = nil
	p.mu.Unlock()
	p.stop()
}
