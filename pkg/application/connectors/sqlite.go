package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/samber/lo"

	"smuverify/pkg/contextx"
	"smuverify/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type SQLite struct {
	value       *sqlx.DB
	Path        string
	BusyTimeout time.Duration
	init        sync.Once
}

func (s *SQLite) Client(ctx context.Context) *sqlx.DB {
	s.init.Do(func() {
		dsn := fmt.Sprintf(
			"file:%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on",
			s.Path, s.BusyTimeout.Milliseconds(),
		)

		s.value = lo.Must(sqlx.ConnectContext(ctx, "sqlite3", dsn))

		// Один писатель, иначе WAL упирается в SQLITE_BUSY.
		s.value.SetMaxOpenConns(1)

		logger(ctx).Info(
			"sqlite connected",
			slog.String("path", s.Path),
		)
	})

	return s.value
}

func (s *SQLite) Close(ctx context.Context) {
	if err := s.value.Close(); err != nil {
		logger(ctx).Error("sqliteClient.Close", logx.Error(err))
	}

	logger(ctx).Info(
		"sqlite disconnected",
		slog.String("path", s.Path),
	)
}
