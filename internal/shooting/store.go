package shooting

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lmercier/tir-tracker/internal/scoring"
)

// New creates a new RangeStore backed by the given database.
func New(db *sql.DB) RangeStore {
	return &store{
		db: db,
	}
}

// CreatePlayer registers a new tireur with an empty score sheet. Names
// are unique across the range.
func (s *store) CreatePlayer(name string, totalShots int) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if exists {
		return nil, ErrNameTaken
	}

	now := time.Now().Unix()
	playerID := uuid.NewString()
	_, err = s.db.Exec(
		"INSERT INTO players (id, name, total_shots, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		playerID, name, totalShots, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	log.Info("Registered new player", "playerID", playerID, "name", name, "totalShots", totalShots)
	return s.getPlayerLocked(playerID)
}

// GetPlayer retrieves a single player with aggregates.
func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayerLocked(playerID)
}

func (s *store) getPlayerLocked(playerID string) (*Player, error) {
	row := s.db.QueryRow("SELECT id, name, total_shots, created_at, updated_at FROM players WHERE id = ?", playerID)

	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.TotalShots, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.fillAggregates(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAllPlayers retrieves every player, newest first, with
// server-computed aggregates.
func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, total_shots, created_at, updated_at FROM players ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.TotalShots, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range players {
		if err := s.fillAggregates(&players[i]); err != nil {
			return nil, err
		}
	}
	return players, nil
}

// fillAggregates loads a player's shot values and derives the stats the
// API exposes. Derived fields are never stored; they are recomputed on
// every read so they cannot drift from the score rows.
func (s *store) fillAggregates(p *Player) error {
	rows, err := s.db.Query("SELECT value FROM scores WHERE player_id = ? ORDER BY shot_number", p.ID)
	if err != nil {
		return fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	values := []float64{}
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	p.Scores = values
	p.ShotCount = len(values)
	p.TotalScore = scoring.Total(values)
	p.AverageScore = scoring.Average(values)
	p.BestShot = scoring.Best(values)
	p.WorstShot = scoring.Worst(values)
	p.Consistency = scoring.Consistency(values)
	p.Completion = scoring.CompletionPercentage(p.ShotCount, p.TotalShots)
	return nil
}

// UpdatePlayer renames a player and/or changes the configured shot
// count. Lowering the shot count drops any recorded shots past the new
// cap in the same transaction.
func (s *store) UpdatePlayer(playerID string, update PlayerUpdate) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !exists {
		tx.Rollback()
		return nil, ErrPlayerNotFound
	}

	if update.Name != nil {
		var taken bool
		if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE name = ? AND id != ?)", *update.Name, playerID).Scan(&taken); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("database error: %w", err)
		}
		if taken {
			tx.Rollback()
			return nil, ErrNameTaken
		}
		if _, err := tx.Exec("UPDATE players SET name = ? WHERE id = ?", *update.Name, playerID); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to rename player: %w", err)
		}
	}

	if update.TotalShots != nil {
		if _, err := tx.Exec("UPDATE players SET total_shots = ? WHERE id = ?", *update.TotalShots, playerID); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update shot count: %w", err)
		}
		// Shots past the new cap are dropped, never kept dangling.
		if _, err := tx.Exec("DELETE FROM scores WHERE player_id = ? AND shot_number > ?", playerID, *update.TotalShots); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to truncate scores: %w", err)
		}
	}

	if _, err := tx.Exec("UPDATE players SET updated_at = ? WHERE id = ?", time.Now().Unix(), playerID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("Updated player", "playerID", playerID)
	return s.getPlayerLocked(playerID)
}

// ResetScores wipes a player's sheet and returns the zeroed player.
func (s *store) ResetScores(playerID string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !exists {
		return nil, ErrPlayerNotFound
	}

	if _, err := s.db.Exec("DELETE FROM scores WHERE player_id = ?", playerID); err != nil {
		return nil, fmt.Errorf("failed to reset scores: %w", err)
	}
	if _, err := s.db.Exec("UPDATE players SET updated_at = ? WHERE id = ?", time.Now().Unix(), playerID); err != nil {
		return nil, err
	}

	log.Info("Reset player scores", "playerID", playerID)
	return s.getPlayerLocked(playerID)
}

// DeletePlayer removes a player; the scores foreign key cascades.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlayerNotFound
	}

	log.Info("Deleted player", "playerID", playerID)
	return nil
}

// RecordShot appends a shot to a player's sheet. The shot number is
// assigned inside the transaction from the current row count, so two
// concurrent submissions can never claim the same slot or overrun the
// player's configured limit.
func (s *store) RecordShot(playerID string, value float64, x, y *float64, ring string) (*Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	var totalShots int
	err = tx.QueryRow("SELECT total_shots FROM players WHERE id = ?", playerID).Scan(&totalShots)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM scores WHERE player_id = ?", playerID).Scan(&count); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count >= totalShots {
		tx.Rollback()
		log.Warn("Rejected shot past configured limit", "playerID", playerID, "totalShots", totalShots)
		return nil, ErrShotLimitReached
	}

	score := Score{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		ShotNumber: count + 1,
		Value:      value,
		X:          x,
		Y:          y,
		Ring:       ring,
		RecordedAt: time.Now().Unix(),
	}
	if x != nil && y != nil {
		score.Precision = scoring.PrecisionAt(*x, *y)
	} else {
		score.Precision = scoring.Precision(value)
	}
	if score.Ring == "" {
		score.Ring = ringFor(value)
	}

	_, err = tx.Exec(
		"INSERT INTO scores (id, player_id, shot_number, value, x, y, precision, ring, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		score.ID, score.PlayerID, score.ShotNumber, score.Value, score.X, score.Y, score.Precision, score.Ring, score.RecordedAt,
	)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record shot: %w", err)
	}
	if _, err := tx.Exec("UPDATE players SET updated_at = ? WHERE id = ?", score.RecordedAt, playerID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("Recorded shot", "playerID", playerID, "shotNumber", score.ShotNumber, "value", value)
	return &score, nil
}

// GetScores returns a player's shots in firing order.
func (s *store) GetScores(playerID string) ([]Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, player_id, shot_number, value, x, y, precision, ring, recorded_at FROM scores WHERE player_id = ? ORDER BY shot_number",
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var sc Score
		var x, y sql.NullFloat64
		var ring sql.NullString
		if err := rows.Scan(&sc.ID, &sc.PlayerID, &sc.ShotNumber, &sc.Value, &x, &y, &sc.Precision, &ring, &sc.RecordedAt); err != nil {
			log.Error("Failed to scan score row", "error", err)
			continue
		}
		if x.Valid {
			sc.X = &x.Float64
		}
		if y.Valid {
			sc.Y = &y.Float64
		}
		sc.Ring = ring.String
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// DeleteScores removes every shot recorded for a player.
func (s *store) DeleteScores(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists); err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if !exists {
		return ErrPlayerNotFound
	}

	_, err := s.db.Exec("DELETE FROM scores WHERE player_id = ?", playerID)
	return err
}

// GetLeaderboard ranks every player by total score, breaking ties on
// average score.
func (s *store) GetLeaderboard() ([]LeaderboardEntry, error) {
	players, err := s.GetAllPlayers()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, LeaderboardEntry{
			PlayerID:     p.ID,
			PlayerName:   p.Name,
			TotalScore:   p.TotalScore,
			AverageScore: p.AverageScore,
			ShotCount:    p.ShotCount,
			BestShot:     p.BestShot,
			Consistency:  p.Consistency,
			Completion:   p.Completion,
		})
	}

	sortLeaderboard(entries)
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

// Clear wipes the store. Used by tests and the admin endpoint.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	if _, err := tx.Exec("DELETE FROM scores"); err != nil {
		log.Error("Failed to clear scores table", "error", err)
		tx.Rollback()
		return
	}
	if _, err := tx.Exec("DELETE FROM players"); err != nil {
		log.Error("Failed to clear players table", "error", err)
		tx.Rollback()
		return
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func sortLeaderboard(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].AverageScore > entries[j].AverageScore
	})
}

// ringFor classifies a shot value when the entry device does not report
// a ring itself.
func ringFor(value float64) string {
	switch {
	case value >= 9:
		return "gold"
	case value >= 7:
		return "red"
	case value >= 5:
		return "blue"
	default:
		return "black"
	}
}
