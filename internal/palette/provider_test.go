package palette

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colorbook/internal/colors"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadSuccess(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"hex":"00ff00"}]`)
	p := NewProvider(Config{Endpoint: srv.URL})

	pal, outcome := p.Load(context.Background())
	assert.Equal(t, Success, outcome)
	assert.Equal(t, Palette{"#00ff00"}, pal)

	cur, curOutcome, loaded := p.Current()
	assert.True(t, loaded)
	assert.Equal(t, Success, curOutcome)
	assert.Equal(t, Palette{"#00ff00"}, cur)
}

func TestLoadKeepsExtraFields(t *testing.T) {
	srv := serve(t, http.StatusOK, `[
		{"id": 1, "title": "a", "hex": "AABBCC", "rgb": {"red": 170}},
		{"id": 2, "title": "b", "hex": "010203"}
	]`)
	pal, outcome := NewProvider(Config{Endpoint: srv.URL}).Load(context.Background())
	assert.Equal(t, Success, outcome)
	assert.Equal(t, Palette{"#AABBCC", "#010203"}, pal)
}

func TestLoadFallback(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"malformed json", http.StatusOK, `[{"hex":`},
		{"not an array", http.StatusOK, `{"hex":"00ff00"}`},
		{"empty array", http.StatusOK, `[]`},
		{"null", http.StatusOK, `null`},
		{"missing hex", http.StatusOK, `[{"title":"x"}]`},
		{"hex wrong type", http.StatusOK, `[{"hex":123}]`},
		{"hex with hash", http.StatusOK, `[{"hex":"#00ff00"}]`},
		{"short hex", http.StatusOK, `[{"hex":"0f0"}]`},
		{"one bad element", http.StatusOK, `[{"hex":"00ff00"},{"hex":"zzzzzz"}]`},
		{"server error", http.StatusInternalServerError, `[{"hex":"00ff00"}]`},
		{"not found", http.StatusNotFound, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			p := NewProvider(Config{Endpoint: srv.URL})

			pal, outcome := p.Load(context.Background())
			assert.Equal(t, Fallback, outcome)
			assert.Equal(t, FallbackPalette(), pal)

			cur, curOutcome, loaded := p.Current()
			assert.True(t, loaded)
			assert.Equal(t, Fallback, curOutcome)
			assert.Equal(t, FallbackPalette(), cur)
		})
	}
}

func TestLoadTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	pal, outcome := NewProvider(Config{Endpoint: url}).Load(context.Background())
	assert.Equal(t, Fallback, outcome)
	assert.Equal(t, FallbackPalette(), pal)
}

func TestLoadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	p := NewProvider(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
	pal, outcome := p.Load(context.Background())
	assert.Equal(t, Fallback, outcome)
	assert.Equal(t, FallbackPalette(), pal)
}

func TestFallbackPalette(t *testing.T) {
	pal := FallbackPalette()
	require.GreaterOrEqual(t, len(pal), 20)
	assert.Equal(t, colors.Color("#FF0000"), pal[0])
	for _, c := range pal {
		assert.True(t, c.Valid(), c)
	}

	pal[0] = "#123456"
	assert.Equal(t, colors.Color("#FF0000"), FallbackPalette()[0])
}

func TestActiveColor(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"hex":"00ff00"}]`)
	p := NewProvider(Config{Endpoint: srv.URL})
	assert.Equal(t, colors.Color("#FF0000"), p.ActiveColor())

	p.SelectColor("#ABCDEF")
	assert.Equal(t, colors.Color("#ABCDEF"), p.ActiveColor())

	pal, _ := p.Load(context.Background())
	assert.NotContains(t, pal, colors.Color("#ABCDEF"))
	assert.Equal(t, colors.Color("#ABCDEF"), p.ActiveColor())
}

func TestCurrentBeforeLoad(t *testing.T) {
	p := NewProvider(Config{})
	pal, _, loaded := p.Current()
	assert.False(t, loaded)
	assert.Empty(t, pal)
	assert.Equal(t, colors.Default, p.ActiveColor())
}

// blocking serves requests that wait until the client goes away, except
// those numbered in answer, which get a one-color palette.
func blocking(t *testing.T, answer ...int32) (*httptest.Server, <-chan struct{}) {
	t.Helper()
	var n atomic.Int32
	started := make(chan struct{}, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := n.Add(1)
		for _, a := range answer {
			if a == i {
				_, _ = w.Write([]byte(`[{"hex":"0000ff"}]`))
				return
			}
		}
		started <- struct{}{}
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv, started
}

func TestCloseDiscardsInFlightLoad(t *testing.T) {
	srv, started := blocking(t)
	p := NewProvider(Config{Endpoint: srv.URL})

	done := make(chan Outcome, 1)
	go func() {
		_, outcome := p.Load(context.Background())
		done <- outcome
	}()
	<-started
	p.Close()
	p.Close()

	select {
	case outcome := <-done:
		assert.Equal(t, Fallback, outcome)
	case <-time.After(5 * time.Second):
		t.Fatal("load did not return after Close")
	}
	_, _, loaded := p.Current()
	assert.False(t, loaded)

	pal, outcome := p.Load(context.Background())
	assert.Equal(t, Fallback, outcome)
	assert.NotEmpty(t, pal)
	_, _, loaded = p.Current()
	assert.False(t, loaded)
}

func TestCloseSkipsAsyncCallback(t *testing.T) {
	srv, started := blocking(t)
	p := NewProvider(Config{Endpoint: srv.URL})

	called := make(chan struct{}, 1)
	p.LoadAsync(context.Background(), func(Palette, Outcome) { called <- struct{}{} })
	<-started
	p.Close()

	select {
	case <-called:
		t.Fatal("callback ran after Close")
	case <-time.After(100 * time.Millisecond):
	}
	_, _, loaded := p.Current()
	assert.False(t, loaded)
}

func TestNewerLoadSupersedes(t *testing.T) {
	srv, started := blocking(t, 2)
	p := NewProvider(Config{Endpoint: srv.URL})

	first := make(chan Outcome, 1)
	go func() {
		_, outcome := p.Load(context.Background())
		first <- outcome
	}()
	<-started

	pal, outcome := p.Load(context.Background())
	require.Equal(t, Success, outcome)
	assert.Equal(t, Palette{"#0000ff"}, pal)

	select {
	case o := <-first:
		assert.Equal(t, Fallback, o)
	case <-time.After(5 * time.Second):
		t.Fatal("superseded load did not return")
	}
	cur, curOutcome, loaded := p.Current()
	assert.True(t, loaded)
	assert.Equal(t, Success, curOutcome)
	assert.Equal(t, Palette{"#0000ff"}, cur)
}

func TestCancelledContextIsDiscarded(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"hex":"00ff00"}]`)
	p := NewProvider(Config{Endpoint: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, outcome := p.Load(ctx)
	assert.Equal(t, Fallback, outcome)
	_, _, loaded := p.Current()
	assert.False(t, loaded)
}

func TestLoadAsyncCommits(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"hex":"00ff00"},{"hex":"ff00ff"}]`)
	p := NewProvider(Config{Endpoint: srv.URL})

	got := make(chan Palette, 1)
	p.LoadAsync(context.Background(), func(pal Palette, outcome Outcome) {
		assert.Equal(t, Success, outcome)
		got <- pal
	})
	select {
	case pal := <-got:
		assert.Equal(t, Palette{"#00ff00", "#ff00ff"}, pal)
	case <-time.After(5 * time.Second):
		t.Fatal("async load did not finish")
	}
}
