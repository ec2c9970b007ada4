package cmd

import (
	"fmt"
	"os"

	"github.com/spendforprogress/pledge/internal/backup"

	"github.com/spf13/cobra"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full ledger to a JSON backup",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge entries from a JSON backup",
	Long:  "Entries already in the ledger (matched by ID) are skipped, so importing the same backup twice is safe.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Destination file (default stdout)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	out := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating backup file: %w", err)
		}
		defer f.Close()
		out = f
	}

	entries := eng.History()
	if err := backup.Export(out, entries); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}

	if flagOutput != "" {
		fmt.Fprintf(os.Stderr, "  Exported %d entries to %s\n", len(entries), flagOutput)
	}
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening backup file: %w", err)
	}
	defer f.Close()

	entries, err := backup.Import(f)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	added := eng.MergeEntries(entries)
	fmt.Printf("  Imported %d new entries (%d already present).\n", added, len(entries)-added)

	warnDegraded(eng)
	return nil
}
