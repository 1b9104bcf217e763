// Package migrations holds the authoritative SQL schema. The files are
// the compatibility contract; gorm models mirror them but never migrate
// on their own.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

//go:embed *.sql
var files embed.FS

// Apply runs every migration file in lexical order. All statements use
// IF NOT EXISTS, so Apply is safe to call on every startup.
func Apply(ctx context.Context, db *gorm.DB) error {
	entries, err := files.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := db.WithContext(ctx).Exec(string(sql)).Error; err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}
