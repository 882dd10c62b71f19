package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

var defaultEnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads KEY=VALUE files into the process environment so that ${VAR}
// references in the site config can be resolved. Variables already set in the
// environment win. With no explicit files, .env and .env.local are tried and silently
// skipped when absent; explicitly named files must exist.
func LoadEnvFiles(files ...string) error {
	explicit := len(files) > 0
	if !explicit {
		files = defaultEnvFiles
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return ferrors.NotFoundError("env file not found").WithCause(err).WithContext("path", f).Build()
		}
		if err := godotenv.Load(f); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load env file").
				WithContext("path", f).
				Build()
		}
		slog.Debug("Loaded environment variables", logfields.File(f))
	}
	return nil
}
