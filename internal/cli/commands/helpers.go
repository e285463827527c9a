package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/aki/qrlabel/internal/app"
	"github.com/aki/qrlabel/internal/core/config"
)

// resolveProjectRoot picks --root-dir, the nearest initialized project, or
// the current directory, in that order.
func resolveProjectRoot() (string, error) {
	if flagRootDir != "" {
		return filepath.Abs(flagRootDir)
	}
	if root, err := config.FindProjectRoot(); err == nil {
		return root, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// createContainer loads .env and the configuration and opens the store
func createContainer() (*app.Container, error) {
	root, err := resolveProjectRoot()
	if err != nil {
		return nil, err
	}

	log := CreateLogger()
	if err := config.LoadDotEnv(root); err != nil {
		log.Warn("failed to load .env", "error", err)
	}

	return app.NewContainer(root, app.WithLogger(log))
}

// safeFileName maps label text to a file name, replacing path separators
// and other characters that are awkward in file names.
func safeFileName(text string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsControl(r) || unicode.IsSpace(r):
			return '_'
		}
		return r
	}, text)
	if name == "" || name == "." || name == ".." {
		return "label"
	}
	return name
}
