package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Provider identifies an LLM backend provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// Config holds all configuration values.
type Config struct {
	// LLM backend
	LLMProvider     Provider
	LLMModel        string
	LLMTemperature  float64
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Tavily search
	TavilyAPIKey        string
	TavilyEndpoint      string
	TavilyMaxResults    int
	TavilySearchDepth   string
	TavilyIncludeAnswer bool

	// Pipeline behavior
	MaxRetries         int
	RewriterNumQueries int

	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// HTTP server
	ServerHost         string
	ServerPort         int
	RateLimitPerMinute int

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables, falling back to
// sensible defaults where unset.
func Load() Config {
	return Config{
		// LLM
		LLMProvider:     Provider(getEnv("LLM_PROVIDER", string(ProviderOpenAI))),
		LLMModel:        getEnv("LLM_MODEL", "gpt-4o"),
		LLMTemperature:  getEnvFloat("LLM_TEMPERATURE", 0.0),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		// Tavily
		TavilyAPIKey:        os.Getenv("TAVILY_API_KEY"),
		TavilyEndpoint:      getEnv("TAVILY_ENDPOINT", "https://api.tavily.com/search"),
		TavilyMaxResults:    getEnvInt("TAVILY_MAX_RESULTS", 3),
		TavilySearchDepth:   getEnv("TAVILY_SEARCH_DEPTH", "advanced"),
		TavilyIncludeAnswer: getEnvBool("TAVILY_INCLUDE_ANSWER", true),

		// Pipeline
		MaxRetries:         getEnvInt("MAX_RETRY_COUNT", 1),
		RewriterNumQueries: getEnvInt("REWRITER_NUM_QUERIES", 3),

		// SurrealDB
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "whatstheplan"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "events"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		// Server
		ServerHost:         getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnvInt("PORT", 8000),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),

		// Logging
		LogFile:  os.Getenv("WTP_LOG_FILE"),
		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
