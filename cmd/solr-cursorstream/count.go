// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlibrary/solr-cursorstream/pkg/cursorstream"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the total number of documents matching the query",
	Long: `Count fetches a single minimal page and prints the server-reported
total match count. No documents are streamed.`,
	RunE: runCount,
}

func init() {
	addQueryFlags(countCmd)
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	s, err := streamFromFlags(cmd)
	if err != nil {
		return err
	}

	// One document is the smallest page a cursored request accepts.
	q := s.Query
	q.Rows = 1
	c := cursorstream.NewClient(s.BaseURL, nil)
	page, err := c.FetchPage(context.Background(), "*", q)
	if err != nil {
		return err
	}

	fmt.Println(page.NumFound)
	return nil
}
