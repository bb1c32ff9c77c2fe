// Package presence tracks the players connected to a shared server and
// broadcasts notices (such as new level records) to them.
package presence

import (
	"sync"

	"github.com/google/uuid"
)

// PeerID uniquely identifies a connection.
type PeerID = uuid.UUID

// Notice is a message shown to connected players.
type Notice struct {
	From  string // Player the notice is about
	Level int
	NetMs int64
	Text  string
}

// Peer is one connection's inbox.
type Peer struct {
	id       PeerID
	player   string
	notices  chan Notice
	done     chan struct{}
	doneOnce sync.Once
}

// NewPeer creates a peer with an inbox of bufferSize notices.
func NewPeer(player string, bufferSize int) *Peer {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &Peer{
		id:      uuid.New(),
		player:  player,
		notices: make(chan Notice, bufferSize),
		done:    make(chan struct{}),
	}
}

// ID returns the peer identifier.
func (p *Peer) ID() PeerID {
	return p.id
}

// Player returns the player name of the connection.
func (p *Peer) Player() string {
	return p.player
}

// Send queues a notice without blocking. When the inbox is full the oldest
// notice is dropped.
func (p *Peer) Send(n Notice) {
	select {
	case <-p.done:
		return
	default:
	}

	select {
	case p.notices <- n:
	default:
		select {
		case <-p.notices:
		default:
		}
		select {
		case p.notices <- n:
		default:
		}
	}
}

// Notices returns the inbox.
func (p *Peer) Notices() <-chan Notice {
	return p.notices
}

// Done returns a channel that is closed when the connection ends.
func (p *Peer) Done() <-chan struct{} {
	return p.done
}

// Close marks the connection as ended. Safe to call multiple times.
func (p *Peer) Close() {
	p.doneOnce.Do(func() {
		close(p.done)
	})
}

// Registry tracks connected peers.
// Thread-safe for concurrent access.
type Registry struct {
	mu    sync.RWMutex
	peers map[PeerID]*Peer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		peers: make(map[PeerID]*Peer),
	}
}

// Register adds a peer.
func (r *Registry) Register(p *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[p.id] = p
}

// Unregister removes a peer and closes it.
func (r *Registry) Unregister(id PeerID) {
	r.mu.Lock()
	p, ok := r.peers[id]
	delete(r.peers, id)
	r.mu.Unlock()

	if ok {
		p.Close()
	}
}

// Count returns the number of connected peers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}

// Broadcast sends n to every peer and returns how many received it.
func (r *Registry) Broadcast(n Notice) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.peers {
		p.Send(n)
	}
	return len(r.peers)
}
