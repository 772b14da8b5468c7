package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sally0227/smart-split/internal/calculator"
)

func debtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debts",
		Short: "Print who owes whom, per pair, before minimization",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := loadLedger()
			if err != nil {
				return err
			}

			lines := calculator.DescribeDebtsWithPolicy(ledger.Expenses, ledger.Members, policy())
			if len(lines) == 0 {
				fmt.Println("no outstanding debts")
				return nil
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
}
