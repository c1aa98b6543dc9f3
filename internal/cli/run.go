package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"smuverify/internal/application"
	"smuverify/internal/config"
	"smuverify/internal/infrastructure/prompter"
	"smuverify/internal/report"
	"smuverify/pkg/application/modules"
	"smuverify/pkg/contextx"
)

// RunOptions — флаги команды run.
type RunOptions struct {
	*RootOptions
	ConfigPath    string
	OutDir        string
	ArchivePath   string
	MetricsListen string
	Operator      string
}

func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Выполнить полный прогон поверки",
		Long: "Выполняет процедуры раздела 18 по порядку: 18-3, 18-4, 18-5, 18-6,\n" +
			"затем малые токи 18-11 и 18-13 с ручной коммутацией эталонных\n" +
			"резисторов 5156. Результаты уходят в CSV и JSON; код выхода 1,\n" +
			"если есть непрошедшие точки либо прогон прерван.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "config/instruments.yaml", "путь к YAML конфигу стенда")
	cmd.Flags().StringVar(&opts.OutDir, "out", "results", "каталог выгрузки результатов")
	cmd.Flags().StringVar(&opts.ArchivePath, "archive", "", "файл sqlite архива прогонов (не ведётся, если пусто)")
	cmd.Flags().StringVar(&opts.MetricsListen, "metrics-listen", "", "адрес /metrics (не поднимается, если пусто)")
	cmd.Flags().StringVar(&opts.Operator, "operator", "", "поверитель, попадает в архив и лог")

	return cmd
}

func runSession(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "config", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if opts.Operator != "" {
		ctx = contextx.WithOperator(ctx, contextx.Operator(opts.Operator))
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if opts.MetricsListen != "" {
		modules.MetricServer{ListenAddress: opts.MetricsListen}.Run(groupCtx, group)
	}

	result, runErr := application.Run(groupCtx, application.Session{
		Config:      cfg,
		OutDir:      opts.OutDir,
		ArchivePath: opts.ArchivePath,
		Prompter:    prompter.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout()),
	})

	cancel()

	if err := group.Wait(); err != nil && runErr == nil {
		runErr = err
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintln(cmd.OutOrStdout(), "\nПрогон остановлен оператором, стенд погашен.")

			return NewExitError(ExitFailure, "run aborted by operator")
		}

		return WrapExitError(ExitFailure, "run", runErr)
	}

	summary := report.Summarize(result.Run)

	formatter := Formatter{Format: opts.Format, Out: cmd.OutOrStdout()}

	err = formatter.Print(
		struct {
			Summary   report.Summary   `json:"summary"`
			Artifacts report.Artifacts `json:"artifacts"`
		}{Summary: summary, Artifacts: result.Artifacts},
		func(w io.Writer) error {
			fmt.Fprintln(w)

			if err := summary.RenderText(w); err != nil {
				return err
			}

			fmt.Fprintln(w, "CSV:", result.Artifacts.CSV)
			fmt.Fprintln(w, "JSON:", result.Artifacts.JSON)

			if result.Artifacts.StandardsCSV != "" {
				fmt.Fprintln(w, "Standards CSV:", result.Artifacts.StandardsCSV)
			}

			return nil
		},
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "print summary", err)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d points failed", summary.Failed, summary.Points))
	}

	return nil
}
