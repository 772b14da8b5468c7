package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sally0227/smart-split/internal/calculator"
)

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Print net balances per participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := loadLedger()
			if err != nil {
				return err
			}

			balances, warnings := calculator.ComputeBalancesWithPolicy(ledger.Expenses, ledger.Members, policy())
			printWarnings(warnings)

			names := make(map[string]string, len(ledger.Members))
			for _, m := range ledger.Members {
				names[m.ID] = m.Name
			}

			ids := make([]string, 0, len(balances))
			for id := range balances {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				name := names[id]
				if name == "" {
					name = id
				}
				fmt.Printf("%-20s %+.2f\n", name, balances[id])
			}
			return nil
		},
	}
}
