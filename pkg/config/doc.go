// Package config loads configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv (dotenv files) and
// github.com/caarlos0/env/v11 (struct tags). Parse fills a struct on every
// call and accepts options for extra dotenv files, a variable prefix or an
// explicit variable map. Load reads ./.env once, then parses and caches one
// value per configuration type for the life of the process.
//
//	type Config struct {
//		Input   string `env:"PASSCHECK_INPUT"`
//		Workers int    `env:"PASSCHECK_WORKERS" envDefault:"4"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Failures wrap ErrParsingConfig or ErrLoadingEnvFile and keep the
// underlying env/godotenv error, so errors.Is and errors.As both work.
package config
