package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/NicolaLanata/math-arcade/internal/scope"
	"github.com/NicolaLanata/math-arcade/internal/ui"
)

// backupFile is the on-disk envelope for a full data export: every
// stored key/value pair, profile blob included.
type backupFile struct {
	ExportedAt string            `json:"exportedAt"`
	Version    int               `json:"version"`
	Entries    map[string]string `json:"entries"`
}

const backupVersion = 1

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all players and progress",
	}
	cmd.AddCommand(newBackupExportCmd(), newBackupImportCmd())
	return cmd
}

func newBackupExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored record to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if output == "" {
				output = fmt.Sprintf("arcade_backup_%s.json", time.Now().Format("20060102_150405"))
			}
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			entries := make(map[string]string)
			for _, k := range a.store.Keys() {
				if v, ok := a.store.Get(k); ok {
					entries[k] = v
				}
			}

			data, err := json.MarshalIndent(backupFile{
				ExportedAt: time.Now().UTC().Format(time.RFC3339),
				Version:    backupVersion,
				Entries:    entries,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode backup: %w", err)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write backup file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d records to %s\n", ui.IconCheck, len(entries), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: arcade_backup_YYYYMMDD_HHMMSS.json)")
	return cmd
}

func newBackupImportCmd() *cobra.Command {
	var (
		input string
		clear bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore records from a JSON export",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read backup file: %w", err)
			}
			var bk backupFile
			if err := json.Unmarshal(data, &bk); err != nil {
				return fmt.Errorf("failed to parse backup file: %w", err)
			}
			if bk.Version != backupVersion {
				return fmt.Errorf("unsupported backup version %d", bk.Version)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if clear {
				if !passParentalGate(cmd) {
					return nil
				}
				for _, k := range a.store.Keys() {
					a.store.Remove(k)
				}
			}

			restored := 0
			for k, v := range bk.Entries {
				a.store.Set(k, v)
				restored++
			}

			// Re-normalize the profile blob so a hand-edited or older
			// export still loads cleanly.
			if _, ok := a.store.Get(scope.ProfileBlobKey); ok {
				a.profiles.Reset()
				a.profiles.Load()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d record%s from %s\n", ui.IconCheck, restored, plural(restored), input)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "backup file to restore (required)")
	cmd.Flags().BoolVar(&clear, "clear", false, "erase existing data before import")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
