package instrument

import (
	"context"
	"strconv"
	"time"

	"smuverify/pkg/contextx"
	"smuverify/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Имена приборов в логах и метриках.
const (
	NameK6430      = "k6430"
	NameHP3458A    = "hp3458a"
	NameFluke5720A = "fluke5720a"
)

// Bus — построчный канал обмена с прибором (scpi.Conn либо фейк в тестах).
type Bus interface {
	Name() string
	Command(ctx context.Context, cmd string) error
	Query(ctx context.Context, cmd string) (string, error)
	ReadLine(ctx context.Context) (string, error)
	Close() error
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// tryCommand — best-effort команда: сбой уходит в лог, не в вызов.
func tryCommand(ctx context.Context, bus Bus, cmd string) {
	if err := bus.Command(ctx, cmd); err != nil {
		logger(ctx).Warn("instrument command skipped",
			logx.FieldInstrument, bus.Name(),
			logx.FieldCommand, cmd,
			logx.Error(err),
		)
	}
}

// pause — прерываемая отменой контекста пауза.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
