package config // package config loads application configuration from environment variables

import "os"

// Placeholder backend credentials.  A process started without real
// database settings keeps these values, and the application then runs
// entirely on the seeded in-memory store instead of refusing to boot.
const (
	PlaceholderDBUser = "demo"
	PlaceholderDBPass = "demo-key"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database username
	DBPass string // database password
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name
}

// Load reads configuration values from environment variables.  Every
// value has a default, so an empty environment yields a runnable
// configuration that operates in local-fallback mode.
func Load() Config {
	return Config{
		Env:    getenv("APP_ENV", "dev"),
		Port:   getenv("APP_PORT", "8080"),
		DBUser: getenv("DB_USER", PlaceholderDBUser),
		DBPass: getenv("DB_PASS", PlaceholderDBPass),
		DBHost: getenv("DB_HOST", "localhost"),
		DBPort: getenv("DB_PORT", "3306"),
		DBName: getenv("DB_NAME", "workshop"),
	}
}

// BackendConfigured reports whether real database credentials were
// provided.  The placeholder pair means "no backend": the caller should
// not even attempt to dial and should serve the seeded fallback data.
func (c Config) BackendConfigured() bool {
	return c.DBUser != PlaceholderDBUser || c.DBPass != PlaceholderDBPass
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
