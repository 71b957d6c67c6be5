// =============================================================================
// Catalog Order Mapper - Find Command
// =============================================================================
//
// This file defines the 'find' command, which resolves a single identifier
// against the catalog the same way order mapping does: by item code, then
// exact name, then case-insensitive name.
//
// COMMAND USAGE:
//   ordercsv find <identifier>
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <identifier>",
	Short: "Look up a catalog item by code or name",
	Long: `The find command resolves one identifier against the catalog using the
same lookup order as order mapping: exact item code, exact item name, then
case-insensitive item name.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(args[0])
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(identifier string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	item, err := openCatalog(cfg).FindItem(identifier)
	if err != nil {
		return err
	}

	if item == nil {
		return fmt.Errorf("item '%s' not found in catalog", identifier)
	}

	fmt.Printf("Code:        %s\n", item.ItemCode)
	fmt.Printf("Name:        %s\n", item.ItemName)
	if item.Category != "" {
		fmt.Printf("Category:    %s\n", item.Category)
	}
	if item.SourceFile != "" {
		fmt.Printf("Source file: %s\n", item.SourceFile)
	}

	return nil
}
