package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karim/itqan/internal/content"
	"github.com/karim/itqan/internal/encompass"
)

const graphSnapshotsKept = 5

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build and inspect the encompassing graph",
}

var graphBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the graph from the lesson catalog and persist it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		cat, err := content.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}

		opts := cfg.GraphOptions()
		cooccur, _ := cmd.Flags().GetBool("cooccurrence")
		if cooccur {
			var exercises []content.Exercise
			for _, l := range cat.Lessons {
				exercises = append(exercises, l.Exercises...)
			}
			opts.ManualOverrides = append(opts.ManualOverrides,
				encompass.CooccurrenceEdges(exercises, opts.MinWeight)...)
		}

		g := encompass.BuildGraph(cat.Lessons, opts)
		raw, err := encompass.MarshalGraph(g)
		if err != nil {
			return err
		}

		st, err := openStore(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.GraphRepo()
		if err := repo.Save(ctx, raw); err != nil {
			return err
		}
		if err := repo.Prune(ctx, graphSnapshotsKept); err != nil {
			return err
		}

		log.Info("graph built",
			zap.Int("lessons", len(cat.Lessons)),
			zap.Int("nodes", len(g.Encompasses)))
		fmt.Fprintf(cmd.OutOrStdout(), "Built graph over %d lessons (%d nodes with outgoing edges)\n",
			len(cat.Lessons), len(g.Encompasses))
		return nil
	},
}

var graphExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the latest persisted graph as JSON (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := openStore(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		raw, err := st.GraphRepo().Latest(cmd.Context())
		if err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("no graph snapshot stored; run `itqan graph build` first")
		}

		if len(args) == 1 {
			return os.WriteFile(args[0], raw, 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}

var graphReachCmd = &cobra.Command{
	Use:   "reach <item-id>",
	Short: "Report how many items benefit from practicing one item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := openStore(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		raw, err := st.GraphRepo().Latest(cmd.Context())
		if err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("no graph snapshot stored; run `itqan graph build` first")
		}
		g, err := encompass.UnmarshalGraph(raw)
		if err != nil {
			return err
		}

		itemID := args[0]
		reached := encompass.AllEncompassed(itemID, g, encompass.ReachThreshold)
		fmt.Fprintf(cmd.OutOrStdout(), "%s reaches %d items\n", itemID, len(reached))
		return nil
	},
}

var graphTopCmd = &cobra.Command{
	Use:   "top [n]",
	Short: "Rank graph nodes by how many items they reach",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := openStore(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		raw, err := st.GraphRepo().Latest(cmd.Context())
		if err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("no graph snapshot stored; run `itqan graph build` first")
		}
		g, err := encompass.UnmarshalGraph(raw)
		if err != nil {
			return err
		}

		topN := 10
		if len(args) == 1 {
			if topN, err = strconv.Atoi(args[0]); err != nil || topN < 1 {
				return fmt.Errorf("n must be a positive integer")
			}
		}

		ids := make([]string, 0, len(g.Encompasses))
		for id := range g.Encompasses {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, ranked := range encompass.HighReachItems(ids, g, topN) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", ranked.ID, ranked.Reach)
		}
		return nil
	},
}

func init() {
	graphBuildCmd.Flags().Bool("cooccurrence", false, "Also derive item edges from exercise co-occurrence")
	graphCmd.AddCommand(graphBuildCmd)
	graphCmd.AddCommand(graphExportCmd)
	graphCmd.AddCommand(graphReachCmd)
	graphCmd.AddCommand(graphTopCmd)
}
