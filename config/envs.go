package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP   string // Host IP for the server
	RESTPort int    // Port for the REST API
	GinMode  string // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel string // debug, info, warn or error

	MazeWidth            int    // Default maze width
	MazeHeight           int    // Default maze height
	MazeMaxDimension     int    // Largest width or height the API accepts
	MazeGenerator        string // Local generator: backtracker, wilson or random
	MazeServiceURL       string // Remote generation service; empty disables it
	MazeServiceTimeoutMS int    // Remote generation timeout

	CellSize        int // Default pixels per cell for frames
	StepIntervalMS  int // Default animation interval
	StepLimitFactor int // Autoplay stops after factor x width x height steps

	RedisAddr       string // Maze cache address; empty disables the cache
	RedisPassword   string
	RedisDB         int
	MazeCacheTTLSec int

	DBURI  string // MongoDB URI; empty disables saved mazes
	DBName string // Name of the database

	JWTSecret             string // Secret key for JWT signing
	JWTIssuer             string // Issuer claim for JWTs
	SessionTokenTTLMin    int    // Lifetime of session control tokens
	SessionIdleTimeoutMin int    // Idle sessions are closed after this long
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:   getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort: getEnvAsInt("REST_PORT", 8080),
		GinMode:  getEnvWithDefault("GIN_MODE", "release"),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		MazeWidth:            getEnvAsInt("MAZE_WIDTH", 15),
		MazeHeight:           getEnvAsInt("MAZE_HEIGHT", 15),
		MazeMaxDimension:     getEnvAsInt("MAZE_MAX_DIMENSION", 100),
		MazeGenerator:        getEnvWithDefault("MAZE_GENERATOR", "backtracker"),
		MazeServiceURL:       getEnvWithDefault("MAZE_SERVICE_URL", ""),
		MazeServiceTimeoutMS: getEnvAsInt("MAZE_SERVICE_TIMEOUT_MS", 2000),

		CellSize:        getEnvAsInt("CELL_SIZE", 25),
		StepIntervalMS:  getEnvAsInt("STEP_INTERVAL_MS", 100),
		StepLimitFactor: getEnvAsInt("STEP_LIMIT_FACTOR", 8),

		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		MazeCacheTTLSec: getEnvAsInt("MAZE_CACHE_TTL_SEC", 3600),

		DBURI:  getEnvWithDefault("DB_URI", ""),
		DBName: getEnvWithDefault("DB_NAME", "pathviz"),

		JWTSecret:             getEnvWithDefault("JWT_SECRET", randomSecret()),
		JWTIssuer:             getEnvWithDefault("JWT_ISSUER", "vinom-pathviz"),
		SessionTokenTTLMin:    getEnvAsInt("SESSION_TOKEN_TTL_MIN", 120),
		SessionIdleTimeoutMin: getEnvAsInt("SESSION_IDLE_TIMEOUT_MIN", 30),
	}
}

// getEnvAsInt retrieves the value of an environment variable as an integer,
// or the default when it is not set. A value that cannot be parsed is fatal.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// randomSecret returns a per-process signing key. Tokens signed with it do
// not survive a restart.
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("[APP] [FATAL] Generating JWT secret: %v", err)
	}
	return hex.EncodeToString(b)
}
