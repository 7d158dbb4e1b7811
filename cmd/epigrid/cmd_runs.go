package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/epigrid/report"
	"github.com/katalvlaran/epigrid/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs persisted in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var runs []store.Run
			s, err := openStore(cmd)
			switch {
			case errors.Is(err, errNoStore):
				// nothing recorded yet
			case err != nil:
				return err
			default:
				defer s.Close()
				if runs, err = s.ListRuns(cmd.Context()); err != nil {
					return err
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				if runs == nil {
					runs = []store.Run{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(runs)
			}
			if len(runs) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCENARIO\tSIZE\tGENERATIONS\tSEED\tDEATHS\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
					r.ID, r.Scenario, r.Size, r.Generations, r.Seed, r.Deaths, r.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
	cmd.PersistentFlags().String("store", "", "SQLite database (default from config)")

	cmd.AddCommand(newRunsCountsCmd())
	return cmd
}

func newRunsCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts <run-id>",
		Short: "Print the per-generation counts of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if errors.Is(err, errNoStore) {
				return fmt.Errorf("run %s: %w", args[0], store.ErrRunNotFound)
			}
			if err != nil {
				return err
			}
			defer s.Close()

			history, err := s.Counts(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(history)
			}

			console := report.NewConsole(cmd.OutOrStdout(), true)
			if err := console.Header(); err != nil {
				return err
			}
			for _, c := range history {
				if err := console.Counts(c); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// errNoStore means the store file has not been created yet.
var errNoStore = errors.New("store does not exist")

// openStore opens --store or, failing that, the configured store path.
// A missing file is reported as errNoStore and is not created.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		path = cfg.Store.Path
	}
	if path != ":memory:" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, errNoStore)
		} else if err != nil {
			return nil, fmt.Errorf("checking store %s: %w", path, err)
		}
	}
	return store.Open(cmd.Context(), path)
}
