package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Gemini   Gemini
	Reading  Reading
}

type Server struct {
	Port string
}

type Database struct {
	// Path is the SQLite file holding both the entity collections and the
	// settings blob store. Everything is local to this installation.
	Path string
}

type Gemini struct {
	// APIKey is only a seed for first run; the session store owns the
	// credential afterwards.
	APIKey       string
	DefaultModel string
	// CallTimeout bounds a single generation/grading call. Zero means no
	// caller-imposed timeout; grading calls can legitimately run long.
	CallTimeout time.Duration
}

type Reading struct {
	// RoundsPart5/7 generation calls are issued per test, with BatchDelay
	// between consecutive rounds. Part 6 is always a single round.
	RoundsPart5 int
	RoundsPart7 int
	BatchDelay  time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "toeicmate.db")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_CALL_TIMEOUT", "0s")
	viper.SetDefault("READING_ROUNDS_PART5", 3)
	viper.SetDefault("READING_ROUNDS_PART7", 3)
	viper.SetDefault("READING_BATCH_DELAY", "15s")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.DefaultModel = viper.GetString("GEMINI_MODEL")
	config.Gemini.CallTimeout = viper.GetDuration("GEMINI_CALL_TIMEOUT")

	config.Reading.RoundsPart5 = viper.GetInt("READING_ROUNDS_PART5")
	config.Reading.RoundsPart7 = viper.GetInt("READING_ROUNDS_PART7")
	config.Reading.BatchDelay = viper.GetDuration("READING_BATCH_DELAY")

	log.Info().Str("port", config.Server.Port).Str("db", config.Database.Path).Msg("Config loaded")
	return &config, nil
}
