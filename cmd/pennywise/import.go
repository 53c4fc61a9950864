package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pennywise/pennywise/internal/importer"
	"github.com/pennywise/pennywise/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import transactions from OFX/QFX or CSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			bar := progressbar.Default(int64(len(args)), "importing")
			total := 0
			for _, path := range args {
				txns, err := parseStatement(ctx, path)
				if err != nil {
					return fmt.Errorf("failed to import %s: %w", path, err)
				}
				if err := db.SaveTransactions(ctx, txns); err != nil {
					return fmt.Errorf("failed to save %s: %w", path, err)
				}
				total += len(txns)
				_ = bar.Add(1)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %d file(s).\n", total, len(args))
			return nil
		},
	}
	return cmd
}

// parseStatement picks a parser by file extension.
func parseStatement(ctx context.Context, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return importer.NewOFXParser().ParseFile(ctx, f)
	case ".csv":
		return importer.NewCSVParser().ParseFile(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported statement format %q", filepath.Ext(path))
	}
}
