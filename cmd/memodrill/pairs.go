package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/coolbeans/memodrill/pkg/logger"
	"github.com/coolbeans/memodrill/pkg/pairs"
	"github.com/coolbeans/memodrill/pkg/trainer"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func pairsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Manage and drill letter-pair images",
	}
	cmd.PersistentFlags().String("dir", ".", "directory holding bld_pairs_*.csv group files")
	a.bindFlags(cmd, map[string]string{"pairs.dir": "dir"})

	cmd.AddCommand(pairsImportCmd(a))
	cmd.AddCommand(pairsGroupsCmd(a))
	cmd.AddCommand(pairsDrillCmd(a))
	return cmd
}

func pairsImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <grid.xlsx|grid.csv>",
		Short: "Split a letter-pair grid into group files",
		Long: `Reads a square grid whose header row holds second letters and whose first
column holds first letters, and writes one bld_pairs_<L>.csv file per first
letter. Pairs containing a learn-last letter go to bld_pairs_Z.csv instead.
Empty cells and cells holding "." are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.settings.Pairs
			n, written, err := pairs.Import(args[0], s.Dir, s.LearnLast)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pairs into %d group files in %s\n", n, len(written), s.Dir)
			return nil
		},
	}
	cmd.Flags().String("learn-last", pairs.DefaultLearnLast, "letters whose pairs are grouped last")
	a.bindFlags(cmd, map[string]string{"pairs.learn_last": "learn-last"})
	return cmd
}

func pairsGroupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the group files and their pair counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := pairs.ListGroups(a.settings.Pairs.Dir)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No group files in %s\n", a.settings.Pairs.Dir)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-6s %s\n", "Group", "Pairs", "File")
			for _, key := range pairs.SortedKeys(groups) {
				loaded, err := pairs.LoadPairs(groups[key])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-6d %s\n", key, len(loaded), filepath.Base(groups[key]))
			}
			return nil
		},
	}
}

func pairsDrillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill [group...]",
		Short: "Drill letter-pair images until each is mastered",
		Long: `Asks for the image of random letter pairs from the selected groups. A pair
is mastered after --mastery correct answers in a row; a wrong answer resets
its count. Without group arguments the groups are chosen interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.settings.Pairs
			out := cmd.OutOrStdout()

			groups, err := pairs.ListGroups(s.Dir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			lines := trainer.ReadLines(ctx, cmd.InOrStdin())

			fmt.Fprintf(out, "Mastery requires %d correct answers\n", s.Mastery)

			if len(args) > 0 {
				selected := validGroups(groups, args)
				if len(selected) == 0 {
					return fmt.Errorf("no group files for %s in %s", strings.Join(args, " "), s.Dir)
				}
				return ignoreCanceled(drillGroups(ctx, a, cmd, groups, selected, lines))
			}

			for {
				fmt.Fprintf(out, "\nAvailable groups: %s\n", strings.Join(pairs.SortedKeys(groups), ", "))
				fmt.Fprint(out, "Select group(s) to drill (space-separated, or 'exit' to quit): ")
				text, ok, err := trainer.NextLine(ctx, lines)
				if !ok {
					return ignoreCanceled(err)
				}
				choice := strings.ToUpper(strings.TrimSpace(text))
				if choice == "EXIT" {
					return nil
				}
				selected := validGroups(groups, strings.Fields(choice))
				if len(selected) == 0 {
					fmt.Fprintln(out, "No valid groups selected. Please try again.")
					continue
				}
				if err := drillGroups(ctx, a, cmd, groups, selected, lines); err != nil {
					return ignoreCanceled(err)
				}
			}
		},
	}
	cmd.Flags().Int("mastery", pairs.DefaultMastery, "consecutive correct answers that master a pair")
	cmd.Flags().Bool("watch", false, "reload group files when they change during the drill")
	a.bindFlags(cmd, map[string]string{
		"pairs.mastery": "mastery",
		"pairs.watch":   "watch",
	})
	return cmd
}

func validGroups(groups map[string]string, keys []string) []string {
	var valid []string
	for _, k := range keys {
		k = strings.ToUpper(k)
		if _, ok := groups[k]; ok {
			valid = append(valid, k)
		}
	}
	return valid
}

func drillGroups(ctx context.Context, a *app, cmd *cobra.Command, groups map[string]string, selected []string, lines <-chan trainer.Line) error {
	s := a.settings.Pairs
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Drilling groups: %s\n", strings.Join(selected, ", "))

	paths := make([]string, len(selected))
	for i, k := range selected {
		paths[i] = groups[k]
	}
	loaded, err := pairs.LoadPairs(paths...)
	if err != nil {
		return err
	}

	log := a.log.With(logger.String("session_id", uuid.NewString()))
	opts := pairs.DrillOptions{
		Mastery:  s.Mastery,
		Logger:   log,
		Progress: cmd.ErrOrStderr(),
	}
	if s.Watch {
		w := pairs.NewWatcher(s.Dir, paths, log)
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		opts.Updates = w.Updates()
	}

	log.Info("drill started", logger.Int("pairs", len(loaded)), logger.String("groups", strings.Join(selected, "")))
	res, err := pairs.NewDrill(loaded, opts).Run(ctx, lines, out)
	log.Info("drill ended",
		logger.Int("attempts", res.Attempts),
		logger.Int("correct", res.Correct),
		logger.Int("mastered", len(res.Mastered)))
	return err
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
