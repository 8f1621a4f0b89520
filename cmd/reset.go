package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all stored learner state",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("reset deletes all strength records and answer history; re-run with --force")
		}

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
		if err := st.StrengthRepo().Reset(ctx); err != nil {
			return err
		}
		if err := st.ResultRepo().Reset(ctx); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Learner state reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation guard")
}
