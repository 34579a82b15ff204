package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Auth          AuthConfig
	Slack         SlackConfig
	ProjectID     string

	// DefaultTotalShots is the shot count assigned to a player when the
	// create request does not specify one.
	DefaultTotalShots int
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// AuthConfig is the single credential pair accepted by /auth/login.
type AuthConfig struct {
	Username string
	Password string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
