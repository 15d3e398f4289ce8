package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	GigaChat GigaChatConfig
	Chat     ChatConfig
	Contract ContractConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
	// Enabled switches the AI fallback path of the chat assistant.
	Enabled bool
}

// ChatConfig tunes the scripted assistant.
type ChatConfig struct {
	ConfidenceThreshold int
	FallbackMessage     string
	FallbackEmotion     string
	// MaxAICallsPerSession caps GigaChat fallback calls per chat session.
	MaxAICallsPerSession int
	SessionTTL           time.Duration
	AITimeout            time.Duration
}

// ContractConfig carries contract-document defaults.
type ContractConfig struct {
	City string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables may be set directly
	// (Docker/K8s).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	confidence, _ := strconv.Atoi(getEnv("CHAT_CONFIDENCE_THRESHOLD", "4"))
	maxAICalls, _ := strconv.Atoi(getEnv("CHAT_MAX_AI_CALLS_PER_SESSION", "10"))
	sessionTTL, _ := strconv.Atoi(getEnv("CHAT_SESSION_TTL_MINUTES", "60"))
	aiTimeout, _ := strconv.Atoi(getEnv("CHAT_AI_TIMEOUT_SECONDS", "15"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"
	aiEnabled := getEnv("GIGACHAT_ENABLED", "false") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "nexbe_contract"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
			Enabled:            aiEnabled,
		},
		Chat: ChatConfig{
			ConfidenceThreshold:  confidence,
			FallbackMessage:      getEnv("CHAT_FALLBACK_MESSAGE", "Hmm, nie znam odpowiedzi na to pytanie. Zapytaj o magazyny energii, ceny, montaż lub dotacje, albo zostaw numer, a oddzwonimy!"),
			FallbackEmotion:      getEnv("CHAT_FALLBACK_EMOTION", "confused"),
			MaxAICallsPerSession: maxAICalls,
			SessionTTL:           time.Duration(sessionTTL) * time.Minute,
			AITimeout:            time.Duration(aiTimeout) * time.Second,
		},
		Contract: ContractConfig{
			City: getEnv("CONTRACT_CITY", "Warszawa"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
