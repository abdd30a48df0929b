package app

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/primeitclub/ict-meetup-api/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger points the global logger at stdout and a size-rotated file under
// the configured log directory. The returned closer flushes the file.
func SetupLogger(conf *config.Config) io.Closer {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(conf.LogDir, "app.log"),
		MaxSize:    10,
		MaxBackups: 14,
		MaxAge:     14,
		Compress:   true,
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if !conf.IsProd() {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(os.Stdout, file)).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger

	return file
}
