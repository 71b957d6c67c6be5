// =============================================================================
// Catalog Order Mapper - Application Entry Point
// =============================================================================
//
// ordercsv converts free-form customer order text into catalog-resolved CSV
// files suitable for import into an ordering system. Item identifiers are
// matched against a JSON product catalog built from supplier price lists.
//
// All functionality is exposed through subcommands; see cmd/ for details.
//
// =============================================================================

package main

import "github.com/desideliver/catalog-mapper/cmd"

func main() {
	cmd.Execute()
}
