package config

import (
	"os"
	"path/filepath"
)

// candidateConfigs are tried in order by FindConfig, relative to the search directory.
var candidateConfigs = []string{
	"docs/.vuepress/config.yml",
	"docs/.vuepress/config.yaml",
	"docs/.vuepress/config.json",
	".vuepress/config.yml",
	".vuepress/config.yaml",
	".vuepress/config.json",
	"config.yml",
	"config.yaml",
	"config.json",
}

// FindConfig returns the first conventional site config location below dir.
func FindConfig(dir string) (string, bool) {
	for _, c := range candidateConfigs {
		p := filepath.Join(dir, filepath.FromSlash(c))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// LegacyConfig returns the JavaScript config found below dir, if any. Such configs are
// detected only to point users at a conversion.
func LegacyConfig(dir string) (string, bool) {
	for _, c := range []string{"docs/.vuepress/config.js", ".vuepress/config.js"} {
		p := filepath.Join(dir, filepath.FromSlash(c))
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
