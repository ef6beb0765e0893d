package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncg777/musicbox2/store"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects the saved relation graphs",
	Long:  `Inspects the saved relation graphs`,
	Run: func(cmd *cobra.Command, args []string) {
		inspect()
	},
}

func inspect() {
	cg, err := store.LoadChordGraph()
	if err != nil {
		panic("Could not load chord graph: " + err.Error())
	}
	rg, err := store.LoadRhythmGraph()
	if err != nil {
		panic("Could not load rhythm graph: " + err.Error())
	}

	fmt.Printf("chord graph: %v nodes, %v edges\n", cg.Size(), cg.Edges())
	isolated := 0
	for _, adj := range cg.Adj {
		if len(adj) == 0 {
			isolated++
		}
	}
	fmt.Printf("chord graph isolated nodes: %v\n", isolated)

	fmt.Printf("rhythm graph: %v nodes, %v edges\n", rg.Size(), rg.Edges())
	for i, cell := range rg.Nodes {
		fmt.Printf("cell %v: onsets %v, %v neighbors\n", cell, cell.Onsets(), len(rg.Adj[i]))
	}
}
