package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cib-project/cib/internal/cibproject"
	"github.com/cib-project/cib/internal/nexus"
)

var runForce bool

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compose the project and run one day of the routine",
		RunE:  runRun,
	}
	cmd.Flags().BoolVar(&runForce, "force", false, "override soft-blocking preflight guards")
	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	args, err := cibproject.Load(configFlag)
	if err != nil {
		return fmt.Errorf("loading project args: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(args.Log.Level)}))
	logger.Info("composing project", "person", args.Person.Name, "work_weekday", args.Person.WorkWeekday)

	n, outcome, err := cibproject.Build(cmd.Context(), args, logger, runForce)
	for _, r := range outcome.Warnings() {
		logger.Warn("preflight warning", "guard", r.Check, "message", r.Message)
	}
	if err != nil {
		return err
	}

	morning, ok := nexus.Service[cibproject.MorningRoutine](n)
	if !ok {
		return fmt.Errorf("morning routine service was not exported")
	}
	evening, ok := nexus.Service[cibproject.EveningRoutine](n)
	if !ok {
		return fmt.Errorf("evening routine service was not exported")
	}

	fmt.Printf("-- %s's morning --\n", args.Person.Name)
	morning.Run()
	fmt.Printf("-- %s's evening --\n", args.Person.Name)
	evening.Run()

	if center, ok := nexus.Service[*cibproject.NotifyCenter](n); ok {
		for _, w := range center.Warnings {
			logger.Warn("unsatisfiable notification callback", "callback", w.Callback)
		}
		center.Dispatch(cibproject.Notification{Kind: cibproject.KindWeather, Priority: 0})
		center.Dispatch(cibproject.Notification{Kind: cibproject.KindCalendar, Priority: int64(args.Notifications.Priority)})
	}

	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
