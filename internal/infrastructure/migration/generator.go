package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/orris-inc/warden/internal/shared/logger"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator writes new goose migration files into the scripts directory
type Generator struct {
	scriptsPath string
	now         func() time.Time
	logger      logger.Interface
}

func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		now:         time.Now,
		logger:      log.With("component", "migration.generator"),
	}
}

// CreateMigration writes one file holding both the Up and Down sections and
// returns its path
func (g *Generator) CreateMigration(name string) (string, error) {
	if !migrationNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	version := g.now().UTC().Format("20060102150405")
	path := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.sql", version, name))

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("migration file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(g.template(name)), 0644); err != nil {
		return "", fmt.Errorf("failed to write migration file: %w", err)
	}

	g.logger.Infow("migration file created successfully", "file", path)
	return path, nil
}

func (g *Generator) template(name string) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up
-- +goose StatementBegin

-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin

-- +goose StatementEnd
`, name, g.now().UTC().Format(time.RFC3339))
}
