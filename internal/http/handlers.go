package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lmercier/tir-tracker/internal/auth"
	"github.com/lmercier/tir-tracker/internal/pubsub"
	"github.com/lmercier/tir-tracker/internal/shooting"
)

// respondJSON writes v as the response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError writes the API's error envelope.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// storeError maps store sentinel errors onto HTTP statuses.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shooting.ErrPlayerNotFound):
		respondError(w, http.StatusNotFound, "player not found")
	case errors.Is(err, shooting.ErrNameTaken):
		respondError(w, http.StatusConflict, "player name already taken")
	case errors.Is(err, shooting.ErrShotLimitReached):
		respondError(w, http.StatusConflict, "shot limit reached")
	default:
		log.Error("Store operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		session, err := s.Auth.Login(req.Username, req.Password)
		if err != nil {
			log.Warn("Login rejected", "username", req.Username, "error", err)
			if errors.Is(err, auth.ErrMissingCredentials) {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   session.Token,
			"user":    session.User,
		})
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to get players")
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	type createRequest struct {
		Name       string `json:"name"`
		TotalShots int    `json:"totalShots"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if req.Name == "" {
			respondError(w, http.StatusBadRequest, "name is required")
			return
		}
		if req.TotalShots < 0 {
			respondError(w, http.StatusBadRequest, "totalShots must be positive")
			return
		}
		totalShots := req.TotalShots
		if totalShots == 0 {
			totalShots = s.Cfg.DefaultTotalShots
		}

		player, err := s.Store.CreatePlayer(req.Name, totalShots)
		if err != nil {
			storeError(w, err)
			return
		}
		s.Metrics.IncPlayersCreated()
		if err := s.pubsub.SendMessage(pubsub.EventPlayerCreated, pubsub.PlayerEvent{PlayerID: player.ID, PlayerName: player.Name}); err != nil {
			log.Error("Failed to publish player-created event", "error", err, "playerID", player.ID)
		}
		log.Info("Created player", "playerID", player.ID, "name", player.Name, "totalShots", player.TotalShots)

		respondJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	type updateRequest struct {
		Name       *string `json:"name"`
		TotalShots *int    `json:"totalShots"`
		Action     string  `json:"action"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("id")

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		if req.Action == "reset-scores" {
			player, err := s.Store.ResetScores(playerID)
			if err != nil {
				storeError(w, err)
				return
			}
			if err := s.pubsub.SendMessage(pubsub.EventScoresReset, pubsub.PlayerEvent{PlayerID: player.ID, PlayerName: player.Name}); err != nil {
				log.Error("Failed to publish scores-reset event", "error", err, "playerID", player.ID)
			}
			log.Info("Reset player scores", "playerID", player.ID)
			respondJSON(w, http.StatusOK, player)
			return
		}
		if req.Action != "" {
			respondError(w, http.StatusBadRequest, "unknown action")
			return
		}
		if req.Name != nil && *req.Name == "" {
			respondError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		if req.TotalShots != nil && *req.TotalShots <= 0 {
			respondError(w, http.StatusBadRequest, "totalShots must be positive")
			return
		}

		player, err := s.Store.UpdatePlayer(playerID, shooting.PlayerUpdate{Name: req.Name, TotalShots: req.TotalShots})
		if err != nil {
			storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("id")
		if err := s.Store.DeletePlayer(playerID); err != nil {
			storeError(w, err)
			return
		}
		if err := s.pubsub.SendMessage(pubsub.EventPlayerDeleted, pubsub.PlayerEvent{PlayerID: playerID}); err != nil {
			log.Error("Failed to publish player-deleted event", "error", err, "playerID", playerID)
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "player deleted"})
	}
}

func (s *Server) RecordScoreHandler() http.HandlerFunc {
	type scoreRequest struct {
		PlayerID string   `json:"playerId"`
		Score    *float64 `json:"score"`
		X        *float64 `json:"x"`
		Y        *float64 `json:"y"`
		Ring     string   `json:"ring"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if req.PlayerID == "" || req.Score == nil {
			respondError(w, http.StatusBadRequest, "playerId and score are required")
			return
		}
		if *req.Score < 0 || *req.Score > 10 {
			respondError(w, http.StatusBadRequest, "score must be between 0 and 10")
			return
		}

		score, err := s.Store.RecordShot(req.PlayerID, *req.Score, req.X, req.Y, req.Ring)
		if err != nil {
			if errors.Is(err, shooting.ErrShotLimitReached) {
				s.Metrics.IncShotLimitRejections()
			}
			storeError(w, err)
			return
		}
		s.Metrics.IncShotsRecorded()
		if err := s.pubsub.SendMessage(pubsub.EventShotRecorded, pubsub.ShotEvent{
			PlayerID:   score.PlayerID,
			ShotNumber: score.ShotNumber,
			Value:      score.Value,
			Precision:  score.Precision,
			Ring:       score.Ring,
		}); err != nil {
			log.Error("Failed to publish shot-recorded event", "error", err, "playerID", score.PlayerID)
		}

		s.announce(req.PlayerID, isDryRunFromContext(r))

		respondJSON(w, http.StatusCreated, score)
	}
}

// announce sends the session-complete and new-leader notifications that
// a recorded shot may have triggered. Notification failures are logged,
// never surfaced to the shooter.
func (s *Server) announce(playerID string, dryRun bool) {
	player, err := s.Store.GetPlayer(playerID)
	if err != nil {
		log.Error("Failed to load player for announcements", "error", err, "playerID", playerID)
		return
	}
	if player.ShotCount == player.TotalShots {
		if err := s.Notifier.SendSessionComplete(player, dryRun); err != nil {
			log.Error("Failed to send session complete notification", "error", err, "playerID", playerID)
		}
	}

	entries, err := s.Store.GetLeaderboard()
	if err != nil || len(entries) == 0 {
		return
	}
	top := entries[0]

	s.leaderMu.Lock()
	changed := s.lastLeaderID != "" && s.lastLeaderID != top.PlayerID
	s.lastLeaderID = top.PlayerID
	s.leaderMu.Unlock()

	if changed {
		if err := s.Notifier.SendNewLeader(top, dryRun); err != nil {
			log.Error("Failed to send new leader notification", "error", err, "playerID", top.PlayerID)
		}
	}
}

func (s *Server) ListScoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerId")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, "playerId is required")
			return
		}
		if !s.Store.IsKnownPlayer(playerID) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		scores, err := s.Store.GetScores(playerID)
		if err != nil {
			storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, scores)
	}
}

func (s *Server) DeleteScoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerId")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, "playerId is required")
			return
		}
		if !s.Store.IsKnownPlayer(playerID) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		if err := s.Store.DeleteScores(playerID); err != nil {
			storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "scores deleted"})
	}
}

// LeaderboardHandler serves the current ranking.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Store.GetLeaderboard()
		if err != nil {
			log.Error("Failed to get leaderboard from store", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to get leaderboard")
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}
