package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karim/itqan/internal/strength"
)

var decayCmd = &cobra.Command{
	Use:   "decay",
	Short: "Apply time decay to every stored strength record",
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
		repo := st.StrengthRepo()
		records, err := repo.All(ctx)
		if err != nil {
			return err
		}

		svc := strength.NewService(records)
		changed := svc.ApplyDecay(time.Now())
		if len(changed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to decay")
			return nil
		}

		if err := repo.UpsertAll(ctx, svc.Records()); err != nil {
			return err
		}

		log.Info("decay applied", zap.Int("changed", len(changed)))
		fmt.Fprintf(cmd.OutOrStdout(), "Decayed %d items\n", len(changed))
		return nil
	},
}
