package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnv loads .env files into the process environment without
// overriding variables that are already set. With no arguments it loads
// ./.env. Failures are logged and otherwise ignored.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Msg("no .env file, using environment variables")
			return
		}
		log.Warn().Err(err).Msg("error loading .env file, using environment variables")
	}
}
