// Package migrations схема БД, встроенная в бинарник
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/m04kA/clinic-scheduling-service/pkg/dbmetrics"
)

// ErrApply возвращается при ошибке применения миграции
var ErrApply = errors.New("migrations: failed to apply")

//go:embed *.sql
var files embed.FS

// Apply применяет все *.sql файлы в лексикографическом порядке
// Файлы идемпотентны (IF NOT EXISTS), поэтому повторный запуск безопасен
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return fmt.Errorf("%w: list files: %v", ErrApply, err)
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", ErrApply, name, err)
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("%w: exec %s: %v", ErrApply, name, err)
		}
	}

	return nil
}
