// Package net serves a live, read-only mirror of the drawing to viewers on
// the local network.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"colorbook/internal/render"
	"colorbook/internal/state"
)

// Message is what viewers receive on /ws, once on connect and after every
// change. Versions arrive in non-decreasing order; a viewer may see the
// same version twice when it joins during a burst.
type Message struct {
	Type     string         `json:"type"`
	Snapshot state.Snapshot `json:"snapshot"`
}

const typeSnapshot = "snapshot"

// Mirror holds the latest published snapshot and serves it over HTTP:
// /ws streams Messages, /snapshot returns the latest one, /frame.png renders it.
type Mirror struct {
	hub      *Hub
	comp     *render.Compositor
	upgrader websocket.Upgrader

	mu         sync.RWMutex
	latest     state.Snapshot
	background image.Image
	notify     chan struct{}
}

// NewMirror creates a mirror that renders frames with comp.
func NewMirror(comp *render.Compositor) *Mirror {
	if comp == nil {
		comp = &render.Compositor{}
	}
	return &Mirror{
		hub:        NewHub(),
		comp:       comp,
		background: comp.Background,
		notify:     make(chan struct{}, 1),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish records s as the latest snapshot. It never blocks; viewers are
// updated by Run, which coalesces bursts into the newest snapshot. A
// snapshot older than the latest one from the same session is ignored.
func (m *Mirror) Publish(s state.Snapshot) {
	m.mu.Lock()
	if s.Session == m.latest.Session && s.Version < m.latest.Version {
		m.mu.Unlock()
		return
	}
	m.latest = s
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Latest returns the last published snapshot.
func (m *Mirror) Latest() state.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// SetBackground replaces the template that /frame.png draws strokes over.
// A nil img renders on plain paper.
func (m *Mirror) SetBackground(img image.Image) {
	m.mu.Lock()
	m.background = img
	m.mu.Unlock()
}

// Viewers returns the number of connected websocket viewers.
func (m *Mirror) Viewers() int {
	return m.hub.Len()
}

// Run broadcasts published snapshots until ctx is done, then disconnects
// all viewers.
func (m *Mirror) Run(ctx context.Context) {
	defer m.hub.CloseAll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.notify:
			if err := m.hub.Broadcast(m.encodeLatest); err != nil {
				log.Printf("[MIRROR] encode snapshot: %v", err)
			}
		}
	}
}

func (m *Mirror) encodeLatest() ([]byte, error) {
	return json.Marshal(Message{Type: typeSnapshot, Snapshot: m.Latest()})
}

// Handler returns the mirror's HTTP routes.
func (m *Mirror) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.serveWS)
	mux.HandleFunc("/snapshot", m.serveSnapshot)
	mux.HandleFunc("/frame.png", m.serveFrame)
	return mux
}

func (m *Mirror) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[MIRROR] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if err := m.hub.Add(conn, m.encodeLatest); err != nil {
		log.Printf("[MIRROR] initial send to %s failed: %v", conn.RemoteAddr(), err)
		return
	}
	defer m.hub.Remove(conn)

	// Viewers are read-only; reading only drives control frames and
	// notices disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Mirror) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := m.encodeLatest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (m *Mirror) serveFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	m.mu.RLock()
	comp := *m.comp
	comp.Background = m.background
	snap := m.latest
	m.mu.RUnlock()

	if err := comp.EncodePNG(w, snap); err != nil {
		log.Printf("[MIRROR] render frame: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// ListenAndServe serves the mirror on port until ctx is done. With
// advertise set, the service is also announced over mDNS.
func (m *Mirror) ListenAndServe(ctx context.Context, port int, advertise bool) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to start mirror on port %d: %w", port, err)
	}
	srv := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if advertise {
		md, err := Advertise(port)
		if err != nil {
			log.Printf("[MIRROR] mDNS disabled: %v", err)
		} else {
			defer md.Shutdown()
		}
	}

	go m.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[MIRROR] serving on %s", ShareURL(port))
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
