package config

import (
	"os"
	"strconv"
	"time"
)

// Failure modes for the chat endpoint when the model backend is
// unavailable or every generation attempt fails.
const (
	ModeStrict   = "strict"   // surface 503/500 with an error field
	ModeGraceful = "graceful" // substitute a rule-based reply, return 200
)

type Config struct {
	// HTTP configuration
	HTTPAddr      string
	AllowedOrigin string

	// Model backend configuration
	ModelProvider     string // "huggingface", "openai" or "none"
	HuggingFaceToken  string
	HuggingFaceModel  string
	OpenAIAPIKey      string
	OpenAIModel       string
	ModelTimeout      time.Duration
	ModelMaxAttempts  int
	ModelRetryBackoff time.Duration

	// Conversation configuration
	MaxTurns     int
	SystemPrompt string
	FailureMode  string

	// Intent handler configuration
	JokeAPIURL  string
	JokeTimeout time.Duration

	// NATS configuration (optional second front end)
	NatsURL     string
	NatsSubject string
	NatsTimeout time.Duration

	// Service configuration
	ServiceName string
	LogLevel    string
}

func Load() *Config {
	return &Config{
		// HTTP settings
		HTTPAddr:      getEnv("HTTP_ADDR", ":5000"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),

		// Model backend settings
		ModelProvider:     getEnv("MODEL_PROVIDER", "huggingface"),
		HuggingFaceToken:  getEnv("HUGGINGFACE_API_TOKEN", ""),
		HuggingFaceModel:  getEnv("HUGGINGFACE_MODEL_ID", "facebook/blenderbot-400M-distill"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ModelTimeout:      getDurationEnv("MODEL_TIMEOUT", 30*time.Second),
		ModelMaxAttempts:  getIntEnv("MODEL_MAX_ATTEMPTS", 3),
		ModelRetryBackoff: getDurationEnv("MODEL_RETRY_BACKOFF", 2*time.Second),

		// Conversation settings
		MaxTurns:     getIntEnv("MAX_TURNS", 5),
		SystemPrompt: getEnv("SYSTEM_PROMPT", "You are a helpful and friendly chatbot."),
		FailureMode:  getEnv("FAILURE_MODE", ModeStrict),

		// Intent handler settings
		JokeAPIURL:  getEnv("JOKE_API_URL", "https://official-joke-api.appspot.com/random_joke"),
		JokeTimeout: getDurationEnv("JOKE_TIMEOUT", 10*time.Second),

		// NATS settings (transport is only started when NATS_URL is set)
		NatsURL:     getEnv("NATS_URL", ""),
		NatsSubject: getEnv("NATS_SUBJECT", "chat.message"),
		NatsTimeout: getDurationEnv("NATS_TIMEOUT", 30*time.Second),

		// Service settings
		ServiceName: getEnv("SERVICE_NAME", "chatbuddy"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
