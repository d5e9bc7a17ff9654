package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gordian-engine/gvigil"
	"github.com/spf13/cobra"
)

func main() {
	if err := mainE(); err != nil {
		os.Exit(1)
	}
}

func mainE() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := NewRootCmd(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Info("Failure", "err", err)
		os.Stderr.Sync()
		return err
	}

	return nil
}

func NewRootCmd(log *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "gvigil-demo SUBCOMMAND",

		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},

		Long: `gvigil-demo runs a synthetic worker under a vigil,
to demonstrate how the escalation ladder behaves against a live,
slow, or fully stalled worker.

Run a healthy worker and watch only informational logs:
    $ gvigil-demo run

Simulate a deadlock three seconds in and watch the vigil escalate
through missed, at-risk, and stalled:
    $ gvigil-demo run --stall-after 3s

Pre-declare a long blocking operation so that it does not escalate:
    $ gvigil-demo run --slow-op 2s
`,
	}

	rootCmd.AddCommand(
		NewRunCmd(log),
	)

	return rootCmd
}

func NewRunCmd(log *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use: "run",

		Short: "Run a synthetic worker under a vigil",

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()

			interval, err := fs.GetDuration("interval")
			if err != nil {
				return err
			}
			workEvery, err := fs.GetDuration("work-every")
			if err != nil {
				return err
			}
			stallAfter, err := fs.GetDuration("stall-after")
			if err != nil {
				return err
			}
			slowOp, err := fs.GetDuration("slow-op")
			if err != nil {
				return err
			}

			return runWorker(cmd.Context(), log, workerConfig{
				Interval:   interval,
				WorkEvery:  workEvery,
				StallAfter: stallAfter,
				SlowOp:     slowOp,
			})
		},
	}

	fs := cmd.Flags()
	fs.Duration("interval", 500*time.Millisecond, "Expected maximum gap between the worker's heartbeats")
	fs.Duration("work-every", 200*time.Millisecond, "How often the worker completes a unit of work")
	fs.Duration("stall-after", 0, "Simulate a deadlock after this long (0 to never stall)")
	fs.Duration("slow-op", 0, "Perform one pre-declared long blocking operation of this length (0 to skip)")

	return cmd
}

type workerConfig struct {
	Interval   time.Duration
	WorkEvery  time.Duration
	StallAfter time.Duration
	SlowOp     time.Duration
}

// runWorker simulates a processing loop under a vigil.
// The stall callback stops the worker,
// standing in for the diagnostics or process abort
// a real embedding application would perform.
func runWorker(ctx context.Context, log *slog.Logger, cfg workerConfig) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	v, err := gvigil.New(ctx, log.With("sys", "vigil"), gvigil.Config{
		Interval: cfg.Interval,
		Callbacks: gvigil.CallbackSet{
			OnMissed: func() {
				log.Warn("Vigil reports a missed heartbeat")
			},
			OnAtRisk: func() {
				log.Error("Vigil reports the worker at risk")
			},
			OnStalled: func() {
				log.Error("Vigil reports a stall; stopping the demo")
				cancel(fmt.Errorf("worker stalled (no heartbeat within %s)", cfg.Interval))
			},
		},
	})
	if err != nil {
		return err
	}
	defer v.Wait()
	defer v.Close()

	start := time.Now()
	didSlowOp := false

	for {
		select {
		case <-ctx.Done():
			if cause := context.Cause(ctx); cause != ctx.Err() {
				return cause
			}
			return nil
		case <-time.After(cfg.WorkEvery):
			// One unit of work.
		}

		if cfg.StallAfter > 0 && time.Since(start) >= cfg.StallAfter {
			log.Info("Worker is now simulating a deadlock")
			<-ctx.Done()
			if cause := context.Cause(ctx); cause != ctx.Err() {
				return cause
			}
			return nil
		}

		if cfg.SlowOp > 0 && !didSlowOp && time.Since(start) >= cfg.WorkEvery {
			didSlowOp = true

			// Pre-declare the long operation so the vigil stays quiet,
			// then restore the normal interval once it completes.
			log.Info("Worker starting a pre-declared slow operation", "dur", cfg.SlowOp)
			v.SetInterval(cfg.SlowOp + cfg.Interval)
			time.Sleep(cfg.SlowOp)
			v.SetInterval(cfg.Interval)
			log.Info("Worker finished the slow operation")
		}

		log.Info("Worker completed a unit of work", "level", v.Level())
		v.Notify()
	}
}
