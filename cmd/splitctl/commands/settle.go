package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sally0227/smart-split/internal/calculator"
)

func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Print the minimal set of payments that settles the group",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := loadLedger()
			if err != nil {
				return err
			}

			p := policy()
			balances, warnings := calculator.ComputeBalancesWithPolicy(ledger.Expenses, ledger.Members, p)
			printWarnings(warnings)

			transactions := calculator.MinimizeTransactionsWithPolicy(balances, p)
			if len(transactions) == 0 {
				fmt.Println("all settled")
				return nil
			}

			names := make(map[string]string, len(ledger.Members))
			for _, m := range ledger.Members {
				names[m.ID] = m.Name
			}
			display := func(id string) string {
				if name := names[id]; name != "" {
					return name
				}
				return id
			}

			for _, txn := range transactions {
				fmt.Printf("%s pays %s %.2f\n", display(txn.FromID), display(txn.ToID), txn.Amount)
			}
			return nil
		},
	}
}
