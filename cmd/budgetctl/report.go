package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerline/ledgerline-client/internal/calc"
)

// cmdReport fetches budgets and transactions concurrently and prints the
// derived spend figures per budget.
func (a *app) cmdReport(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.budgets.Fetch(gctx) })
	g.Go(func() error { return a.transactions.Fetch(gctx) })
	g.Go(func() error { return a.categories.Fetch(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}

	summaries := calc.Summarize(a.budgets.Budgets(), a.transactions.Transactions())
	if len(summaries) == 0 {
		fmt.Println("no budgets")
		return nil
	}

	fmt.Printf("%-15s %10s %10s %10s %9s\n", "CATEGORY", "BUDGET", "SPENT", "REMAINING", "PROGRESS")
	for _, s := range summaries {
		fmt.Printf("%-15s %10s %10s %10s %8s%%\n",
			s.Budget.Category.DisplayName(),
			s.Budget.Amount.StringFixed(2),
			s.Spent.StringFixed(2),
			s.Remaining.StringFixed(2),
			s.Progress.StringFixed(1),
		)
	}
	return nil
}
