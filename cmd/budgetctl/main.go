// budgetctl drives the Ledgerline state layer from the terminal: auth,
// categories, budgets, transactions and the derived spend report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline-client/internal/alert"
	"github.com/ledgerline/ledgerline-client/internal/api"
	"github.com/ledgerline/ledgerline-client/internal/config"
	"github.com/ledgerline/ledgerline-client/internal/domain"
	"github.com/ledgerline/ledgerline-client/internal/event"
	"github.com/ledgerline/ledgerline-client/internal/session"
	"github.com/ledgerline/ledgerline-client/internal/store"
)

// app wires the stores together for one invocation.
type app struct {
	cfg          *config.Config
	session      *session.Store
	categories   *store.CategoryStore
	budgets      *store.BudgetStore
	transactions *store.TransactionStore
	auth         domain.AuthAPI
	alerts       *alert.Center
}

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	a, err := newApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer a.session.Close()
	defer a.categories.Close()
	defer a.budgets.Close()
	defer a.transactions.Close()

	if err := run(a, os.Args[1:]); err != nil {
		a.alerts.Push(alert.SeverityError, err.Error())
		renderAlerts(os.Stderr, a.alerts.Active())
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
	renderAlerts(os.Stderr, a.alerts.Active())
}

func newApp(cfg *config.Config) (*app, error) {
	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
		api.WithLogger(log.Logger),
	)
	authAPI := api.NewAuthAPI(client)
	categoryAPI := api.NewCategoryAPI(client)
	budgetAPI := api.NewBudgetAPI(client)
	transactionAPI := api.NewTransactionAPI(client)

	bus := event.NewBus()
	slot := session.NewSlot(cfg.SessionFile)
	sess, err := session.NewStore(slot, authAPI, bus,
		session.WithInactivityWindow(cfg.InactivityWindow),
		session.WithLogger(log.Logger),
	)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:          cfg,
		session:      sess,
		categories:   store.NewCategoryStore(categoryAPI, sess, bus, log.Logger),
		budgets:      store.NewBudgetStore(budgetAPI, sess, bus, log.Logger),
		transactions: store.NewTransactionStore(transactionAPI, categoryAPI, budgetAPI, sess, bus, log.Logger),
		auth:         authAPI,
		alerts:       alert.NewCenter(alert.WithLogger(log.Logger)),
	}

	if err := sess.Restore(context.Background()); err != nil {
		return nil, err
	}
	return a, nil
}

func run(a *app, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}

	ctx := context.Background()
	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "logout":
		return a.cmdLogout()
	case "register":
		return a.cmdRegister(ctx, args[1:])
	case "whoami":
		return a.cmdWhoami()
	case "categories":
		return a.cmdCategories(ctx, args[1:])
	case "budgets":
		return a.cmdBudgets(ctx, args[1:])
	case "tx":
		return a.cmdTransactions(ctx, args[1:])
	case "report":
		return a.cmdReport(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: budgetctl <command>

commands:
  login -email <e> -password <p>     authenticate and persist the session
  register -email <e> -password <p>  create an account
  logout                             clear the session
  whoami                             show the current user
  categories list|add|delete         manage expense categories
  budgets list|add|edit|delete       manage budgets
  tx list|add|delete|reset           manage transactions
  report                             budget spend report`)
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("email and password are required")
	}

	sess, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.session.Login(sess); err != nil {
		return err
	}
	a.alerts.Push(alert.SeveritySuccess, "Logged in successfully.")
	fmt.Printf("logged in as %s\n", *email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("email and password are required")
	}

	id, err := a.auth.Register(ctx, *email, *password, *name)
	if err != nil {
		return err
	}
	a.alerts.Push(alert.SeveritySuccess, "Signup successful.")
	fmt.Printf("registered user %s\n", id)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.session.Logout(session.LogoutExplicit); err != nil {
		return err
	}
	a.alerts.Push(alert.SeveritySession, "Logged out successfully.")
	fmt.Println("logged out")
	return nil
}

func (a *app) cmdWhoami() error {
	user := a.session.User()
	if user == nil {
		fmt.Println("not logged in")
		if reason := a.session.LastLogoutReason(); reason == session.LogoutInactivity {
			fmt.Println("previous session ended due to inactivity")
		}
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}

func (a *app) cmdCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("categories: expected list, add or delete")
	}
	switch args[0] {
	case "list":
		if err := a.categories.Fetch(ctx); err != nil {
			return err
		}
		for _, c := range a.categories.Categories() {
			fmt.Printf("%s  %s\n", c.ID, c.DisplayName())
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("categories add", flag.ContinueOnError)
		name := fs.String("name", "", "category name")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		category, err := a.categories.Add(ctx, *name)
		if err != nil {
			return err
		}
		a.alerts.Push(alert.SeveritySuccess, "Category added.")
		fmt.Printf("added category %s\n", category.ID)
		return nil
	case "delete":
		fs := flag.NewFlagSet("categories delete", flag.ContinueOnError)
		id := fs.String("id", "", "category id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.categories.Delete(ctx, *id); err != nil {
			return err
		}
		a.alerts.Push(alert.SeveritySuccess, "Category deleted.")
		fmt.Println("deleted")
		return nil
	default:
		return fmt.Errorf("categories: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdBudgets(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("budgets: expected list, add, edit or delete")
	}
	switch args[0] {
	case "list":
		if err := a.budgets.Fetch(ctx); err != nil {
			return err
		}
		for _, b := range a.budgets.Budgets() {
			fmt.Printf("%s  %-15s %10s  %s - %s\n", b.ID, b.Category.DisplayName(), b.Amount.StringFixed(2), b.StartDate, b.EndDate)
		}
		return nil
	case "add", "edit":
		fs := flag.NewFlagSet("budgets "+args[0], flag.ContinueOnError)
		id := fs.String("id", "", "budget id (edit only)")
		category := fs.String("category", "", "category name")
		amount := fs.String("amount", "", "budget amount")
		start := fs.String("start", "", "start date (dd/mm/yyyy)")
		end := fs.String("end", "", "end date (dd/mm/yyyy)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		amt, err := decimal.NewFromString(*amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q", *amount)
		}
		if args[0] == "add" {
			budget, err := a.budgets.Add(ctx, domain.BudgetCreate{
				CategoryName: *category,
				Amount:       amt,
				StartDate:    *start,
				EndDate:      *end,
			})
			if err != nil {
				return err
			}
			a.alerts.Push(alert.SeveritySuccess, "Budget added.")
			fmt.Printf("added budget %s\n", budget.ID)
			return nil
		}
		if _, err := a.budgets.Edit(ctx, *id, domain.BudgetUpdate{
			CategoryName: *category,
			Amount:       amt,
			StartDate:    *start,
			EndDate:      *end,
		}); err != nil {
			return err
		}
		a.alerts.Push(alert.SeveritySuccess, "Budget updated.")
		fmt.Println("updated")
		return nil
	case "delete":
		fs := flag.NewFlagSet("budgets delete", flag.ContinueOnError)
		id := fs.String("id", "", "budget id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.budgets.Delete(ctx, *id); err != nil {
			return err
		}
		a.alerts.Push(alert.SeveritySuccess, "Budget deleted.")
		fmt.Println("deleted")
		return nil
	default:
		return fmt.Errorf("budgets: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdTransactions(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tx: expected list, add, delete or reset")
	}
	switch args[0] {
	case "list":
		if err := a.transactions.Fetch(ctx); err != nil {
			return err
		}
		for _, t := range a.transactions.Transactions() {
			label := t.IncomeSourceName
			if t.Type == domain.TransactionTypeExpense {
				label = t.Category.DisplayName()
			}
			fmt.Printf("%s  %-7s %10s  %-15s %s\n", t.ID, t.Type, t.Amount.StringFixed(2), label, t.Date.Format("02/01/2006"))
		}
		return nil
	case "add":
		return a.cmdAddTransaction(ctx, args[1:])
	case "delete":
		fs := flag.NewFlagSet("tx delete", flag.ContinueOnError)
		id := fs.String("id", "", "transaction id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.transactions.Delete(ctx, *id); err != nil {
			return err
		}
		a.alerts.Push(alert.SeveritySuccess, "Transaction deleted.")
		fmt.Println("deleted")
		return nil
	case "reset":
		err := a.transactions.ResetAll(ctx)
		if errors.Is(err, domain.ErrSpendResetFailed) {
			// Transactions are gone; only the spend counters are stale.
			a.alerts.Push(alert.SeverityError, "Failed to reset budget spending.")
			fmt.Println("transactions cleared; budget spending reset failed")
			return nil
		}
		if err != nil {
			return err
		}
		a.alerts.Push(alert.SeveritySuccess, "Transactions reset.")
		fmt.Println("all transactions cleared")
		return nil
	default:
		return fmt.Errorf("tx: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdAddTransaction(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx add", flag.ContinueOnError)
	txType := fs.String("type", "expense", "income or expense")
	amount := fs.String("amount", "", "amount")
	categoryID := fs.String("category-id", "", "category id (expense)")
	source := fs.String("source", "", "income source name (income)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	amt, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q", *amount)
	}

	tx, err := a.transactions.Add(ctx, domain.TransactionCreate{
		Type:             domain.TransactionType(*txType),
		Amount:           amt,
		Date:             time.Now().UTC(),
		CategoryID:       *categoryID,
		IncomeSourceName: *source,
	})
	if err != nil {
		return err
	}
	a.alerts.Push(alert.SeveritySuccess, "Transaction added.")
	fmt.Printf("added transaction %s\n", tx.ID)
	return nil
}
