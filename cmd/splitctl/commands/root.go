// Package commands implements the splitctl CLI: offline settlement math over
// a JSON ledger file, without a running server.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sally0227/smart-split/internal/calculator"
	"github.com/sally0227/smart-split/internal/models"
)

var (
	ledgerFile     string
	exact          bool
	includeUnknown bool
)

// Ledger is the on-disk input format: the group roster plus its expenses.
type Ledger struct {
	Members  []models.Participant `json:"members"`
	Expenses []models.Expense     `json:"expenses"`
}

func loadLedger() (*Ledger, error) {
	data, err := os.ReadFile(ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	return &ledger, nil
}

func policy() calculator.Policy {
	p := calculator.DefaultPolicy()
	if exact {
		p.DropSubUnitRemainders = false
	}
	if includeUnknown {
		p.IgnoreUnknownParticipants = false
	}
	return p
}

func printWarnings(warnings []calculator.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

func Execute() error {
	root := &cobra.Command{
		Use:           "splitctl",
		Short:         "Settle group expenses from a JSON ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&ledgerFile, "file", "f", "ledger.json", "ledger file with members and expenses")
	root.PersistentFlags().BoolVar(&exact, "exact", false, "keep sub-unit amounts instead of rounding transactions to whole units")
	root.PersistentFlags().BoolVar(&includeUnknown, "include-unknown", false, "adopt participants referenced by expenses but missing from the roster, instead of dropping their shares")

	root.AddCommand(balancesCmd(), settleCmd(), debtsCmd())
	return root.Execute()
}
