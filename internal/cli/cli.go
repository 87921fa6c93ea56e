// Package cli implements conflictctl, an offline checker that runs the
// conflict engine against JSON snapshots of a student's cart and passes.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/dto"
	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// ErrConflictsFound is returned when a check completes and finds blocking conflicts.
var ErrConflictsFound = errors.New("schedule conflicts found")

// App holds the CLI state.
type App struct {
	root    *cobra.Command
	asJSON  bool
	noColor bool
}

// NewApp builds the command tree.
func NewApp() *App {
	a := &App{}

	a.root = &cobra.Command{
		Use:   "conflictctl",
		Short: "Check coaching schedules for conflicts offline",
		Long: `conflictctl runs the schedule conflict engine against JSON snapshots.

A snapshot holds a student's cart and passes:
  {"cart": [...], "passes": [...]}

The command exits with status 1 when blocking conflicts are found.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				color.NoColor = true
			}
		},
	}

	a.root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Print the raw result as JSON")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.checkCmd())

	return a
}

// SetOutput redirects stdout and stderr of every command.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides os.Args for the next Execute call.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "conflictctl %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) validateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every cart item against the cart and committed passes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := readSnapshot(file)
			if err != nil {
				return err
			}

			result := conflict.ValidateCart(snapshot.Cart, snapshot.Passes)
			if a.asJSON {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				printValidation(cmd.OutOrStdout(), result)
			}

			if result.HasConflicts {
				return ErrConflictsFound
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Snapshot JSON file with cart and passes")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (a *App) checkCmd() *cobra.Command {
	var file, batchFile string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a batch can be added to the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := readSnapshot(file)
			if err != nil {
				return err
			}

			var batch models.Batch
			if err := readJSON(batchFile, &batch); err != nil {
				return err
			}
			if len(conflict.ResolveDays(batch.SchedulePattern, batch.CustomDays)) == 0 {
				return fmt.Errorf("batch %q has no resolvable schedule days", batch.ID)
			}

			result := conflict.CheckBatch(batch, snapshot.Cart, snapshot.Passes)
			if a.asJSON {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				printCheck(cmd.OutOrStdout(), batch, result)
			}

			if result.HasConflict {
				return ErrConflictsFound
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Snapshot JSON file with cart and passes")
	cmd.Flags().StringVarP(&batchFile, "batch", "b", "", "Batch JSON file")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("batch")

	return cmd
}

func readSnapshot(path string) (dto.CartSnapshotRequest, error) {
	var snapshot dto.CartSnapshotRequest
	if err := readJSON(path, &snapshot); err != nil {
		return snapshot, err
	}
	return snapshot, nil
}

func readJSON(path string, target interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
