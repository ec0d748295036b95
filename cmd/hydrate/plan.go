package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hydrate/internal/service"
)

func planCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan <orders>...",
		Short: "Compute the minimum-move reorder plan for claim orders",
		Long: `Compute which nodes hydration would move to bring children stamped
with the given claim orders (in document order) into ascending order.

Nodes on the longest increasing subsequence stay in place. Every
other node moves once, before the first kept node with a larger order.

Examples:
  hydrate plan 2,0,1
  hydrate plan 3 0 1 2
  hydrate plan --json 4,1,2,0,3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := service.ParseOrders(strings.Join(args, ","))
			if err != nil {
				return err
			}
			return runPlan(orders, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")

	return cmd
}

func runPlan(orders []int, asJSON bool) error {
	plan := service.NewPlan(orders)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	if len(plan.Moves) == 0 {
		success("%d nodes already in claim order", len(orders))
		return nil
	}
	success("%d kept, %d moved", plan.Kept, len(plan.Moves))
	for _, m := range plan.Moves {
		if m.Before < 0 {
			fmt.Printf("  move %d to the end\n", m.Order)
			continue
		}
		fmt.Printf("  move %d before %d\n", m.Order, m.Before)
	}
	return nil
}
