package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	// Backend API configuration
	API APIConfig

	// Chat configuration
	Chat ChatConfig

	// Transcript persistence configuration
	Transcript TranscriptConfig

	// OpenAI configuration (optional, enables the history digest)
	OpenAI OpenAIConfig

	// Debug mode
	Debug bool
}

// APIConfig contains backend API configuration
type APIConfig struct {
	BaseURL          string
	FetchTimeoutSecs int
	CacheTTLSecs     int
}

// ChatConfig contains chat configuration
type ChatConfig struct {
	UserName    string
	TimeoutSecs int
}

// TranscriptConfig contains transcript persistence configuration
type TranscriptConfig struct {
	DBPath string
}

// OpenAIConfig contains OpenAI configuration
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Base URL; a Hugging Face Space serves the API on its internal port
	baseURL := os.Getenv("DASHBOARD_API_URL")
	if baseURL == "" {
		if os.Getenv("SPACE_ID") != "" {
			baseURL = "http://127.0.0.1:7860"
		} else {
			baseURL = "http://localhost:8000"
		}
	}

	fetchTimeout := 5
	if val := os.Getenv("FETCH_TIMEOUT_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			fetchTimeout = parsed
		}
	}

	cacheTTL := 5
	if val := os.Getenv("STATS_TTL_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cacheTTL = parsed
		}
	}

	chatTimeout := 30
	if val := os.Getenv("CHAT_TIMEOUT_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			chatTimeout = parsed
		}
	}

	userName := os.Getenv("CHAT_USER_NAME")
	if userName == "" {
		userName = "Dashboard User"
	}

	// Transcript DB path
	transcriptDBPath := os.Getenv("TRANSCRIPT_DB_PATH")
	if transcriptDBPath == "" {
		homeDir, _ := os.UserHomeDir()
		transcriptDBPath = filepath.Join(homeDir, ".agent-dashboard", "transcripts.db")
	}

	return &Config{
		API: APIConfig{
			BaseURL:          baseURL,
			FetchTimeoutSecs: fetchTimeout,
			CacheTTLSecs:     cacheTTL,
		},
		Chat: ChatConfig{
			UserName:    userName,
			TimeoutSecs: chatTimeout,
		},
		Transcript: TranscriptConfig{
			DBPath: transcriptDBPath,
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  os.Getenv("OPENAI_MODEL"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "DASHBOARD_API_URL", Message: "required"}
	}
	return nil
}

// FetchTimeout returns the retrieval timeout as a duration
func (c *APIConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

// CacheTTL returns the snapshot TTL as a duration
func (c *APIConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

// Timeout returns the chat timeout as a duration
func (c *ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
