package level

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/pixil98/go-errors"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/ghostblade/internal/telemetry"
)

// levelFS embeds the built-in level pack at build time.
//
//go:embed levels/*.yaml
var levelFS embed.FS

// Embedded returns the built-in level pack rooted at its level files.
func Embedded() fs.FS {
	sub, err := fs.Sub(levelFS, "levels")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source returns the level pack in dir, or the embedded pack when dir is empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// readYAML reads and unmarshals a YAML file from fsys.
func readYAML[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("failed to read level file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
	}

	return result, nil
}

// Load reads and validates a single level file.
func Load(fsys fs.FS, filename string) (*Level, error) {
	lf, err := readYAML[levelFile](fsys, filename)
	if err != nil {
		return nil, err
	}
	return build(filename, lf)
}

// LoadPack loads every *.yaml level in fsys, ordered by file name.
// All invalid levels are reported together.
func LoadPack(ctx context.Context, fsys fs.FS) ([]*Level, error) {
	tracer := telemetry.Tracer("level")
	_, span := tracer.Start(ctx, "level.load")
	defer span.End()

	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	if len(names) == 0 {
		return nil, ErrNoLevels
	}
	sort.Strings(names)

	el := errors.NewErrorList()
	levels := make([]*Level, 0, len(names))
	for _, name := range names {
		lvl, err := Load(fsys, name)
		if err != nil {
			el.Add(err)
			continue
		}
		levels = append(levels, lvl)
	}

	span.SetAttributes(
		attribute.Int("level.files", len(names)),
		attribute.Int("level.loaded", len(levels)),
	)

	if err := el.Err(); err != nil {
		return nil, err
	}
	return levels, nil
}

// MustLoadPack loads a pack, panicking on error.
// Use this for the embedded pack, which must always be valid.
func MustLoadPack(ctx context.Context, fsys fs.FS) []*Level {
	levels, err := LoadPack(ctx, fsys)
	if err != nil {
		panic(err)
	}
	return levels
}
