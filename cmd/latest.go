// Copyright © 2021 The electrical authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/WesP10/electrical/data"
)

// latestCmd represents the latest command
var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the last recorded values",
	Long:  `Prints the most recently recorded value of every tracked sensor field.`,
	Run:   latest,
}

func init() {
	RootCmd.AddCommand(latestCmd)
}

func latest(cmd *cobra.Command, args []string) {
	if verbose {
		jww.SetStdoutThreshold(jww.LevelTrace)
	}

	db, err := data.OpenDatabase()
	if err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}
	defer db.Close()

	for _, field := range data.FieldNames {
		value, err := db.QueryLast(field)
		if err != nil {
			jww.DEBUG.Println("No samples for", field)
			continue
		}
		fmt.Printf("%s\t%f\n", field, value)
	}
}
