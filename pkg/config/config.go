package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	ESCO       ESCOConfig
	Matching   MatchingConfig
	Embeddings EmbeddingsConfig
	GigaChat   GigaChatConfig
	Logger     LoggerConfig
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

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// ESCOConfig locates the taxonomy dataset and sets extraction defaults.
// AnalysisMaxSkills bounds skill extraction during full CV analysis; it is
// wider than MaxResults because job matching needs the whole skill profile,
// not a short display list.
type ESCOConfig struct {
	DataDir              string
	CacheDir             string
	TaxonomyVersion      string
	SkillsThreshold      float64
	OccupationsThreshold float64
	MaxResults           int
	AnalysisMaxSkills    int
}

// MatchingConfig carries the career-matching policy knobs. The defaults are
// inherited product behavior, kept configurable rather than hard-coded.
type MatchingConfig struct {
	EssentialWeight float64
	OptionalWeight  float64
	MaxSkillGap     int
	LowEffortMax    int
	MediumEffortMax int
	DemandCutoff    int
	CurrentCutoff   int
}

type EmbeddingsConfig struct {
	Provider      string // "ollama" or "openai"
	Model         string
	OllamaHost    string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	Timeout       time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

func Load() (*Config, error) {
	// Try to load .env from the current directory or project root; plain
	// environment variables work too (Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	jwtExp := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	refreshExp := getEnvInt("JWT_REFRESH_EXPIRATION_HOURS", 168)
	embedTimeout := getEnvInt("EMBEDDINGS_TIMEOUT", 60)

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
			DBName:   getEnv("DB_NAME", "careerscope"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		ESCO: ESCOConfig{
			DataDir:              getEnv("ESCO_DATA_DIR", "data/esco"),
			CacheDir:             getEnv("ESCO_CACHE_DIR", "data/cache"),
			TaxonomyVersion:      getEnv("ESCO_TAXONOMY_VERSION", "v1.2.0"),
			SkillsThreshold:      getEnvFloat("SKILLS_THRESHOLD", 0.6),
			OccupationsThreshold: getEnvFloat("OCCUPATIONS_THRESHOLD", 0.55),
			MaxResults:           getEnvInt("EXTRACT_MAX_RESULTS", 10),
			AnalysisMaxSkills:    getEnvInt("ANALYSIS_MAX_SKILLS", 50),
		},
		Matching: MatchingConfig{
			EssentialWeight: getEnvFloat("MATCH_ESSENTIAL_WEIGHT", 0.7),
			OptionalWeight:  getEnvFloat("MATCH_OPTIONAL_WEIGHT", 0.3),
			MaxSkillGap:     getEnvInt("MATCH_MAX_SKILL_GAP", 5),
			LowEffortMax:    getEnvInt("MATCH_LOW_EFFORT_MAX", 2),
			MediumEffortMax: getEnvInt("MATCH_MEDIUM_EFFORT_MAX", 4),
			DemandCutoff:    getEnvInt("GAP_DEMAND_CUTOFF", 2),
			CurrentCutoff:   getEnvInt("GAP_CURRENT_CUTOFF", 3),
		},
		Embeddings: EmbeddingsConfig{
			Provider:      getEnv("EMBEDDINGS_PROVIDER", "ollama"),
			Model:         getEnv("EMBEDDINGS_MODEL", "bge-m3"),
			OllamaHost:    getEnv("OLLAMA_HOST", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			Timeout:       time.Duration(embedTimeout) * time.Second,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true",
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
