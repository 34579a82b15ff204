package apiclient

// PlayerRecord is the wire shape of a player as served by the API,
// aggregates included.
type PlayerRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalShots   int       `json:"totalShots"`
	ShotCount    int       `json:"shotCount"`
	Scores       []float64 `json:"scores"`
	TotalScore   float64   `json:"totalScore"`
	AverageScore float64   `json:"averageScore"`
	CreatedAt    int64     `json:"createdAt"`
	UpdatedAt    int64     `json:"updatedAt"`
}

// ScoreRequest is the payload for POST /scores.
type ScoreRequest struct {
	PlayerID   string   `json:"playerId"`
	Score      float64  `json:"score"`
	ShotNumber int      `json:"shotNumber"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Ring       string   `json:"ring,omitempty"`
}

// ScoreRecord is the created score returned by POST /scores.
type ScoreRecord struct {
	ID         string  `json:"id"`
	PlayerID   string  `json:"playerId"`
	ShotNumber int     `json:"shotNumber"`
	Value      float64 `json:"value"`
	Precision  float64 `json:"precision"`
	Ring       string  `json:"ring,omitempty"`
}

// UpdatePlayerRequest is the payload for PUT /players/{id}. Nil fields
// are omitted; Action may be "reset-scores".
type UpdatePlayerRequest struct {
	Name       *string `json:"name,omitempty"`
	TotalShots *int    `json:"totalShots,omitempty"`
	Action     string  `json:"action,omitempty"`
}

// LoginResponse is the result of POST /auth/login.
type LoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

type LoginUser struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}
