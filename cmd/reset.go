package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all recorded entries and start over",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	count := len(eng.History())
	if count == 0 {
		fmt.Println("  Nothing to erase.")
		return nil
	}

	if !flagForce {
		fmt.Printf("  This erases all %d entries permanently. Continue? [y/N] ", count)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	if err := eng.ResetAll(); err != nil {
		return err
	}

	fmt.Println("  Ledger cleared.")
	warnDegraded(eng)
	return nil
}
