package presence

import "testing"

func TestPeerSendDropsOldest(t *testing.T) {
	p := NewPeer("ann", 2)
	for i := 1; i <= 3; i++ {
		p.Send(Notice{Level: i})
	}

	got := []int{(<-p.Notices()).Level, (<-p.Notices()).Level}
	if got[0] != 2 || got[1] != 3 {
		t.Errorf("notices = %v, expected [2 3]", got)
	}
}

func TestPeerClosed(t *testing.T) {
	p := NewPeer("ann", 4)
	p.Close()
	p.Close() // Safe to call twice

	p.Send(Notice{Level: 1})
	if n := len(p.Notices()); n != 0 {
		t.Errorf("closed peer queued %d notices, expected 0", n)
	}
	select {
	case <-p.Done():
	default:
		t.Error("Done() should be closed")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	ann := NewPeer("ann", 4)
	bob := NewPeer("bob", 4)
	ann2 := NewPeer("ann", 4)
	r.Register(ann)
	r.Register(bob)
	r.Register(ann2)

	if r.Count() != 3 {
		t.Errorf("Count() = %d, expected 3", r.Count())
	}

	if got := r.Broadcast(Notice{From: "bob", Level: 2}); got != 3 {
		t.Errorf("Broadcast() = %d, expected 3", got)
	}
	for _, p := range []*Peer{ann, bob, ann2} {
		if n := <-p.Notices(); n.From != "bob" || n.Level != 2 {
			t.Errorf("peer %s got %+v", p.Player(), n)
		}
	}

	r.Unregister(bob.ID())
	if r.Count() != 2 {
		t.Errorf("Count() = %d after Unregister, expected 2", r.Count())
	}
	select {
	case <-bob.Done():
	default:
		t.Error("Unregister should close the peer")
	}
	r.Unregister(bob.ID()) // Unknown IDs are ignored
}

func TestPeerIDsUnique(t *testing.T) {
	a, b := NewPeer("x", 1), NewPeer("x", 1)
	if a.ID() == b.ID() {
		t.Error("peers should get distinct IDs")
	}
}
