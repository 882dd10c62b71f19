package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/foundation/normalization"
)

// Format is a serialization of the site config.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"json": FormatJSON,
}, FormatYAML)

// ParseFormat normalizes a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	f, err := formatNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryValidation, "unsupported config format").Build()
	}
	return f, nil
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "js", "cjs", "mjs", "ts":
		return "", ferrors.ConfigError("JavaScript site configs cannot be read; convert it to config.yml or config.json").
			WithContext("path", path).
			Build()
	case "":
		return FormatYAML, nil
	}
	f, err := formatNormalizer.NormalizeWithError(ext)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryConfig, "unsupported config file extension").
			WithContext("path", path).
			Build()
	}
	return f, nil
}
