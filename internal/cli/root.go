package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Форматы вывода результатов.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var validFormats = []string{FormatText, FormatJSON} //nolint:gochecknoglobals

// RootOptions — общие флаги всех команд.
type RootOptions struct {
	Verbose bool
	Format  string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "smuverify",
		Short: "Поверка Keithley 6430 по разделу 18 руководства",
		Long: "smuverify прогоняет источник-измеритель Keithley 6430 по процедурам\n" +
			"раздела 18: шесть таблиц точности воспроизведения и измерения\n" +
			"напряжения и тока против эталонного 3458A, с переносом допусков\n" +
			"к фактической уставке и выгрузкой результатов в CSV/JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !lo.Contains(validFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, validFormats))
			}

			setupLogger(opts.Verbose)

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "отладочный лог, включая обмен по шине")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "формат вывода (text|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))

	return cmd
}

// setupLogger ставит tint-хендлер на stderr: stdout остаётся чистым
// для промптов и результата в json.
func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})))
}
