package storage

import "github.com/vovakirdan/stickrun/internal/level"

// PlayerSink records session results under a player name.
// This adapter lets a session save results without depending on storage.
type PlayerSink struct {
	Store     *Store
	Player    string
	Equipment string
}

// SaveResult implements level.ResultSink.
func (p PlayerSink) SaveResult(r level.Result) error {
	_, err := p.Store.SaveEntry(p.Player, p.Equipment, r)
	return err
}

// Ensure PlayerSink implements ResultSink
var _ level.ResultSink = PlayerSink{}
