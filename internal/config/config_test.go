package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Clear anything the host environment may have set; getEnv treats an
	// empty value as unset.
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "LLM_TEMPERATURE",
		"TAVILY_MAX_RESULTS", "TAVILY_SEARCH_DEPTH", "TAVILY_INCLUDE_ANSWER",
		"MAX_RETRY_COUNT", "REWRITER_NUM_QUERIES",
		"PORT", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.LLMProvider != ProviderOpenAI {
		t.Errorf("LLMProvider = %q, want openai", cfg.LLMProvider)
	}
	if cfg.LLMModel != "gpt-4o" {
		t.Errorf("LLMModel = %q, want gpt-4o", cfg.LLMModel)
	}
	if cfg.TavilyMaxResults != 3 {
		t.Errorf("TavilyMaxResults = %d, want 3", cfg.TavilyMaxResults)
	}
	if cfg.TavilySearchDepth != "advanced" {
		t.Errorf("TavilySearchDepth = %q, want advanced", cfg.TavilySearchDepth)
	}
	if !cfg.TavilyIncludeAnswer {
		t.Error("TavilyIncludeAnswer = false, want true")
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.MaxRetries)
	}
	if cfg.RewriterNumQueries != 3 {
		t.Errorf("RewriterNumQueries = %d, want 3", cfg.RewriterNumQueries)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d, want 10", cfg.RateLimitPerMinute)
	}
	if cfg.ServerPort != 8000 {
		t.Errorf("ServerPort = %d, want 8000", cfg.ServerPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("MAX_RETRY_COUNT", "3")
	t.Setenv("REWRITER_NUM_QUERIES", "5")
	t.Setenv("TAVILY_INCLUDE_ANSWER", "false")
	t.Setenv("PORT", "9000")

	cfg := Load()

	if cfg.LLMProvider != ProviderOllama {
		t.Errorf("LLMProvider = %q, want ollama", cfg.LLMProvider)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RewriterNumQueries != 5 {
		t.Errorf("RewriterNumQueries = %d, want 5", cfg.RewriterNumQueries)
	}
	if cfg.TavilyIncludeAnswer {
		t.Error("TavilyIncludeAnswer = true, want false")
	}
	if cfg.ServerPort != 9000 {
		t.Errorf("ServerPort = %d, want 9000", cfg.ServerPort)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("MAX_RETRY_COUNT", "not-a-number")
	t.Setenv("LLM_TEMPERATURE", "warm")

	cfg := Load()

	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want default 1", cfg.MaxRetries)
	}
	if cfg.LLMTemperature != 0.0 {
		t.Errorf("LLMTemperature = %f, want default 0.0", cfg.LLMTemperature)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
