package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Ollama   OllamaConfig   `mapstructure:"ollama"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Matcher  MatcherConfig  `mapstructure:"matcher"`
	Game     GameConfig     `mapstructure:"game"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Tts      TtsConfig      `mapstructure:"tts"`
	Log      LogConfig      `mapstructure:"log"`
}

// LLM provider selection for scenario generation
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // "gemini", "ollama" or "openai"
}

type OllamaConfig struct {
	Host    string `mapstructure:"host"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`   // Optional, defaults to OpenAI API
	MaxTokens int    `mapstructure:"max_tokens"` // Optional, defaults to model's max
	Timeout   int    `mapstructure:"timeout"`
}

type GeminiConfig struct {
	APIKey    string   `mapstructure:"api_key"`
	Models    []string `mapstructure:"models"`     // tried in order
	RetryWait int      `mapstructure:"retry_wait"` // seconds to wait after a quota error
	Timeout   int      `mapstructure:"timeout"`
}

// MatcherConfig tunes the dialogue matcher
type MatcherConfig struct {
	Embedder       string  `mapstructure:"embedder"` // "lexical", "ollama" or "openai"
	EmbeddingModel string  `mapstructure:"embedding_model"`
	Threshold      float64 `mapstructure:"threshold"`
	KeywordBonus   float64 `mapstructure:"keyword_bonus"`
	Cache          string  `mapstructure:"cache"` // "memory" or "redis"
}

type GameConfig struct {
	Scenario            string        `mapstructure:"scenario"` // empty means the built-in case
	GeneratedPath       string        `mapstructure:"generated_path"`
	ScenariosDir        string        `mapstructure:"scenarios_dir"`
	MaxTurns            int           `mapstructure:"max_turns"` // 0 disables the turn limit
	StartingWillingness int           `mapstructure:"starting_willingness"`
	Penalties           PenaltyConfig `mapstructure:"penalties"`
	Scoring             ScoringConfig `mapstructure:"scoring"`
	Plain               bool          `mapstructure:"plain"`
	ClearScreen         bool          `mapstructure:"clear_screen"`
	WrapWidth           int           `mapstructure:"wrap_width"`
}

// PenaltyConfig holds willingness costs
type PenaltyConfig struct {
	Question       int `mapstructure:"question"`
	RepeatGreeting int `mapstructure:"repeat_greeting"`
	Accusation     int `mapstructure:"accusation"`
	Insult         int `mapstructure:"insult"`
	Repetition     int `mapstructure:"repetition"`
}

type ScoringConfig struct {
	FactPoints       int `mapstructure:"fact_points"`
	HostilityPenalty int `mapstructure:"hostility_penalty"`
	RepeatPenalty    int `mapstructure:"repeat_penalty"`
	SolveBonus       int `mapstructure:"solve_bonus"`
	TurnBonus        int `mapstructure:"turn_bonus"`
	WrongPenalty     int `mapstructure:"wrong_penalty"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	TTL  int    `mapstructure:"ttl"` // hours, 0 keeps entries forever
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	SessionSecret  string   `mapstructure:"session_secret"`
	PasswordHash   string   `mapstructure:"password_hash"` // bcrypt, empty disables login
}

type TtsConfig struct {
	Type          string `mapstructure:"type"`
	Enabled       bool   `mapstructure:"enabled"`
	NarratorVoice string `mapstructure:"narrator_voice"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "gemini")

	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3.2")
	v.SetDefault("ollama.timeout", 120)

	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", 60)
	v.SetDefault("openai.max_tokens", 4000)

	v.SetDefault("gemini.models", []string{"gemini-2.5-flash", "gemini-2.0-flash-001"})
	v.SetDefault("gemini.retry_wait", 60)
	v.SetDefault("gemini.timeout", 120)

	v.SetDefault("matcher.embedder", "lexical")
	v.SetDefault("matcher.threshold", 0.35)
	v.SetDefault("matcher.keyword_bonus", 3.0)
	v.SetDefault("matcher.cache", "memory")

	v.SetDefault("game.generated_path", "data/scenario_generated.json")
	v.SetDefault("game.scenarios_dir", "data/scenarios")
	v.SetDefault("game.max_turns", 40)
	v.SetDefault("game.starting_willingness", 100)
	v.SetDefault("game.penalties.question", 2)
	v.SetDefault("game.penalties.repeat_greeting", 10)
	v.SetDefault("game.penalties.accusation", 10)
	v.SetDefault("game.penalties.insult", 15)
	v.SetDefault("game.penalties.repetition", 5)
	v.SetDefault("game.scoring.fact_points", 10)
	v.SetDefault("game.scoring.hostility_penalty", 5)
	v.SetDefault("game.scoring.repeat_penalty", 2)
	v.SetDefault("game.scoring.solve_bonus", 50)
	v.SetDefault("game.scoring.turn_bonus", 2)
	v.SetDefault("game.scoring.wrong_penalty", 50)
	v.SetDefault("game.clear_screen", true)
	v.SetDefault("game.wrap_width", 80)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", 0)

	v.SetDefault("database.path", "./gofigure.db")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:8080"})
	v.SetDefault("server.session_secret", "your-secret-key-change-this-in-production")

	v.SetDefault("tts.enabled", false)
	v.SetDefault("tts.type", "google")
	v.SetDefault("tts.narrator_voice", "en-GB-Chirp3-HD-Charon")

	v.SetDefault("log.level", "info")
}

// Load reads config.yaml (or cfgFile when set), .env and GOFIGURE_* variables.
func Load(cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.BindEnv("gemini.api_key", "GOFIGURE_GEMINI_API_KEY", "GEMINI_API_KEY")
	v.BindEnv("openai.api_key", "GOFIGURE_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("llm.provider", "GOFIGURE_LLM_PROVIDER", "LLM_PROVIDER")

	v.SetEnvPrefix("GOFIGURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
