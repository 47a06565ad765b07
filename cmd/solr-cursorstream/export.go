// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlibrary/solr-cursorstream/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Snapshot matching documents into a SQLite file",
	Long: `Export streams every document matching the query into a local SQLite
database, one row per document keyed by the uniqueKey field. The write
happens in a single transaction: a mid-stream failure leaves the
database untouched rather than half-written. Re-running an export
replaces documents that share an id.`,
	RunE: runExport,
}

func init() {
	addQueryFlags(exportCmd)
	exportCmd.Flags().String("db", "export.db", "path of the SQLite database to write")
	exportCmd.Flags().String("unique-key", "id", "document field used as the primary key")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := streamFromFlags(cmd)
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	uniqueKey := resolveString(cmd, "unique-key", "unique_key")

	store, err := export.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	summary, err := store.Write(ctx, s.Documents(ctx), uniqueKey, s.Query.Text, os.Stderr)
	if err != nil {
		return err
	}
	if summary.Skipped > 0 {
		return fmt.Errorf("%d document(s) had no %s field", summary.Skipped, uniqueKey)
	}
	return nil
}
