// Package syncer bridges the pure scoreboard reducer to the server via
// the API client. It owns the single state cell for a session: all
// mutations flow through dispatch, and reconciliation follows a
// re-fetch-authoritative-state strategy for creates, with local patches
// for the simpler delete and score paths.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lmercier/tir-tracker/internal/apiclient"
	"github.com/lmercier/tir-tracker/internal/scoreboard"
)

const defaultTotalShots = 10

// genericErrMsg is the single message surfaced to the UI for any server
// or transport failure. The distinction is logged, not displayed.
const genericErrMsg = "impossible de contacter le serveur"

// Syncer owns a scoreboard state cell and keeps it reconciled with the
// server. All methods are safe for concurrent use; score submission is
// additionally serialized per player so two rapid submissions cannot
// claim the same shot slot.
type Syncer struct {
	mu    sync.Mutex
	state scoreboard.State

	client  apiclient.Client
	journal *Journal

	playerMu map[string]*sync.Mutex
	lockMu   sync.Mutex
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithJournal attaches an offline journal recording mutations that were
// applied locally after a failed server call.
func WithJournal(j *Journal) Option {
	return func(s *Syncer) {
		s.journal = j
	}
}

// New creates a Syncer over the given API client with an empty state.
func New(client apiclient.Client, opts ...Option) *Syncer {
	s := &Syncer{
		state:    scoreboard.NewState(),
		client:   client,
		playerMu: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current scoreboard state.
func (s *Syncer) State() scoreboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// dispatch routes every mutation through the reducer; nothing else may
// touch the state cell.
func (s *Syncer) dispatch(a scoreboard.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = scoreboard.Reduce(s.state, a)
}

// setStatus adjusts the transient request-lifecycle flags. These sit
// outside the reducer's action set because they describe the request in
// flight, not the domain.
func (s *Syncer) setStatus(loading bool, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
	s.state.Err = errMsg
}

// LoadPlayers fetches the full player list and replaces the local state
// with it. On failure the list is replaced with an empty one: the UI
// must not stay stuck, but it must not show stale data either.
func (s *Syncer) LoadPlayers(ctx context.Context) error {
	s.setStatus(true, "")

	records, err := s.client.ListPlayers(ctx)
	if err != nil {
		log.Error("Failed to load players from server", "error", err)
		s.dispatch(scoreboard.LoadPlayers{Players: nil})
		s.setStatus(false, genericErrMsg)
		return err
	}

	players := make([]scoreboard.Player, 0, len(records))
	for _, r := range records {
		players = append(players, convertRecord(r))
	}
	s.dispatch(scoreboard.LoadPlayers{Players: players})
	return nil
}

// AddPlayer creates a player on the server, then re-fetches the full
// list rather than merging the single created record: the server owns
// generated fields, so the extra round trip buys an exact mirror.
func (s *Syncer) AddPlayer(ctx context.Context, name string, totalShots int) error {
	s.setStatus(true, "")

	if _, err := s.client.CreatePlayer(ctx, name, totalShots); err != nil {
		log.Error("Failed to create player", "error", err, "name", name)
		s.setStatus(false, genericErrMsg)
		return err
	}
	return s.LoadPlayers(ctx)
}

// RemovePlayer deletes on the server then patches locally. The mutation
// is simple enough that the client-computed state is trusted to match.
func (s *Syncer) RemovePlayer(ctx context.Context, playerID string) error {
	if err := s.client.DeletePlayer(ctx, playerID); err != nil {
		log.Error("Failed to delete player", "error", err, "playerID", playerID)
		s.setStatus(false, genericErrMsg)
		return err
	}
	s.dispatch(scoreboard.RemovePlayer{ID: playerID})
	return nil
}

// SetCurrentPlayer is a purely local mutation.
func (s *Syncer) SetCurrentPlayer(playerID string) {
	s.dispatch(scoreboard.SetCurrentPlayer{ID: playerID})
}

// ResetScores resets on the server and re-fetches. When the server call
// fails the reset is applied locally anyway so the UI reflects intent,
// and the divergence is recorded in the journal for later replay.
func (s *Syncer) ResetScores(ctx context.Context, playerID string) error {
	if _, err := s.client.ResetScores(ctx, playerID); err != nil {
		log.Error("Failed to reset scores on server, applying locally", "error", err, "playerID", playerID)
		s.dispatch(scoreboard.ResetPlayerScores{ID: playerID})
		s.setStatus(false, genericErrMsg)
		if s.journal != nil {
			s.journal.Append(JournalEntry{Op: OpResetScores, PlayerID: playerID, At: time.Now().Unix()})
		}
		return err
	}
	return s.LoadPlayers(ctx)
}

// AddScore records a shot for a player. The next shot index is computed
// from the local sheet under a per-player lock, and a full sheet aborts
// locally without a server call. On server success the shot is patched
// locally without a re-fetch.
func (s *Syncer) AddScore(ctx context.Context, playerID string, score float64) error {
	lock := s.playerLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	player := s.state.FindPlayer(playerID)
	if player == nil {
		s.mu.Unlock()
		s.setStatus(false, "joueur introuvable")
		return apiclient.ErrNotFound
	}
	shotNumber := len(player.Scores) + 1
	totalShots := player.TotalShots
	s.mu.Unlock()

	if shotNumber > totalShots {
		log.Warn("Refusing shot past configured limit", "playerID", playerID, "totalShots", totalShots)
		s.setStatus(false, "limite de tirs atteinte")
		return apiclient.ErrConflict
	}

	req := apiclient.ScoreRequest{PlayerID: playerID, Score: score, ShotNumber: shotNumber}
	if _, err := s.client.RecordScore(ctx, req); err != nil {
		log.Error("Failed to record score", "error", err, "playerID", playerID)
		s.setStatus(false, genericErrMsg)
		return err
	}

	s.dispatch(scoreboard.AddScore{PlayerID: playerID, Score: score})
	return nil
}

// playerLock returns the submission lock for a player, creating it on
// first use.
func (s *Syncer) playerLock(playerID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.playerMu[playerID]
	if !ok {
		lock = &sync.Mutex{}
		s.playerMu[playerID] = lock
	}
	return lock
}

// Replay re-sends journaled mutations to the server and re-fetches on
// any progress. Entries that fail again stay journaled.
func (s *Syncer) Replay(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}

	entries := s.journal.Entries()
	if len(entries) == 0 {
		return nil
	}

	log.Info("Replaying offline journal", "entries", len(entries))
	var remaining []JournalEntry
	replayed := 0
	for _, entry := range entries {
		switch entry.Op {
		case OpResetScores:
			if _, err := s.client.ResetScores(ctx, entry.PlayerID); err != nil {
				log.Error("Journal replay failed", "error", err, "playerID", entry.PlayerID)
				remaining = append(remaining, entry)
				continue
			}
			replayed++
		default:
			log.Warn("Dropping journal entry with unknown op", "op", entry.Op)
		}
	}

	if err := s.journal.Replace(remaining); err != nil {
		return err
	}
	if replayed > 0 {
		return s.LoadPlayers(ctx)
	}
	return nil
}

// convertRecord maps the wire shape onto the reducer's player shape.
// The server's shotCount becomes currentShot; a missing totalShots
// falls back to the default session length.
func convertRecord(r apiclient.PlayerRecord) scoreboard.Player {
	totalShots := r.TotalShots
	if totalShots == 0 {
		totalShots = defaultTotalShots
	}
	scores := r.Scores
	if scores == nil {
		scores = []float64{}
	}
	return scoreboard.Player{
		ID:          r.ID,
		Name:        r.Name,
		TotalShots:  totalShots,
		CurrentShot: r.ShotCount,
		Scores:      scores,
		TotalScore:  r.TotalScore,
	}
}
