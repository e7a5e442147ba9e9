// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rsajulga-nmdp/metaquantome/internal/version"
	"github.com/rsajulga-nmdp/metaquantome/internal/writers"
)

// usageError marks validation/flag problems so they exit with code 2,
// distinct from runtime failures.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app carries the per-invocation wiring shared by subcommands.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
	verbose bool
}

// Run executes the CLI with the given argv (excluding the program name)
// and returns the process exit code: 0 ok, 2 usage, 1 runtime failure.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext is Run with caller-controlled cancellation.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintln(stderr, "error:", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "metaquantome",
		Short:   "quantitative analysis of microbiome taxonomy and function",
		Long:    "metaquantome aggregates peptide intensities across annotation hierarchies\n(NCBI taxonomy, Gene Ontology, EC classification) for differential-abundance\nreporting in meta-omics datasets.",
		Version: version.Version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if a.verbose {
			level = slog.LevelDebug
		}
		a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})).
			With(slog.String("run_id", uuid.NewString()))
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(
		a.expandCmd(),
		a.filtCmd(),
		a.statCmd(),
		a.ftCmd(),
		a.dbCmd(),
	)
	return root
}

// openOutput resolves --output: empty or "-" means stdout; otherwise the
// named file is created. The returned closer is a no-op for stdout.
func (a *app) openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return a.stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return fh, fh.Close, nil
}
