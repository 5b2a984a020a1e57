package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()
