package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/karim/itqan/internal/strength"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-item strength and accuracy",
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

		ctx := cmd.Context()
		records, err := st.StrengthRepo().All(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No practice recorded yet")
			return nil
		}

		results := st.ResultRepo()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tSTRENGTH\tPROVEN\tACCURACY\tATTEMPTS")
		for _, r := range records {
			acc, attempts, err := results.ItemAccuracy(ctx, r.ItemID)
			if err != nil {
				return err
			}
			proven := ""
			if r.ProvenMastery {
				proven = "yes"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%.0f%%\t%d\n",
				r.ItemID, r.Score, proven, acc*100, attempts)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		challengeReady := 0
		for _, r := range records {
			if strength.ShouldTriggerChallenge(r.Score) {
				challengeReady++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d items, %d ready for challenge mode\n",
			len(records), challengeReady)
		return nil
	},
}
