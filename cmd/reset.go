package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all stored data for a learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Printf("This deletes all mastery records, answer history and sessions for %q.\n", learner)
			fmt.Print("Type the learner ID to confirm: ")
			var confirm string
			if _, err := fmt.Scanln(&confirm); err != nil || confirm != learner {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Learners().DeleteData(context.Background(), learner); err != nil {
			return fmt.Errorf("delete learner data: %w", err)
		}
		fmt.Printf("Deleted all data for %q.\n", learner)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
