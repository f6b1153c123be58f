package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"fintrack/internal/chart"
	"fintrack/internal/core"
	"fintrack/internal/services"
	"fintrack/internal/view"
)

// Context carries what every command needs to run.
type Context struct {
	Ctx context.Context
	Svc *services.LedgerService
}

// CLI is the root command tree.
type CLI struct {
	Add     AddCmd     `cmd:"" help:"Record an income or expense transaction."`
	List    ListCmd    `cmd:"" help:"List transactions, optionally filtered."`
	Edit    EditCmd    `cmd:"" help:"Replace the fields of an existing transaction."`
	Rm      RmCmd      `cmd:"" help:"Delete a transaction by id."`
	Clear   ClearCmd   `cmd:"" help:"Delete every transaction."`
	Sort    SortCmd    `cmd:"" help:"Toggle the stored order by date or amount."`
	Summary SummaryCmd `cmd:"" help:"Show totals and per-category breakdowns."`
	Chart   ChartCmd   `cmd:"" help:"Render a category breakdown chart to a PNG file."`
}

type txFlags struct {
	Description string `short:"d" required:"" help:"Free-text label."`
	Amount      string `short:"a" required:"" help:"Positive decimal amount, e.g. 12.34."`
	Type        string `short:"t" required:"" enum:"income,expense" help:"Transaction type."`
	Category    string `short:"c" default:"other" help:"Category key."`
	Date        string `help:"Date as YYYY-MM-DD, defaults to today."`
}

func (f txFlags) input() (services.TransactionInput, error) {
	cents, err := core.ParseDecimalToCents(f.Amount)
	if err != nil {
		return services.TransactionInput{}, fmt.Errorf("amount %q: %w", f.Amount, err)
	}

	date := core.Today()
	if strings.TrimSpace(f.Date) != "" {
		date, err = core.ParseDate(f.Date)
		if err != nil {
			return services.TransactionInput{}, fmt.Errorf("date %q: %w", f.Date, err)
		}
	}

	return services.TransactionInput{
		Description: f.Description,
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(f.Type),
		Category:    f.Category,
		Date:        date,
	}, nil
}

type AddCmd struct {
	txFlags
}

func (c *AddCmd) Run(app *Context) error {
	in, err := c.input()
	if err != nil {
		return err
	}
	tx, err := app.Svc.Add(app.Ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("added %s: %s %s (%s) on %s\n", tx.ID, tx.Type, tx.Amount, tx.Category, tx.Date.ISO())
	return nil
}

type ListCmd struct {
	Type     string `short:"t" default:"all" help:"Filter by 'income' or 'expense'."`
	Category string `short:"c" default:"all" help:"Filter by exact category."`
	From     string `help:"Inclusive lower date bound (YYYY-MM-DD)."`
	To       string `help:"Inclusive upper date bound (YYYY-MM-DD)."`
	Search   string `short:"q" help:"Case-insensitive description search."`
}

func (c *ListCmd) Run(app *Context) error {
	f := view.Filter{Type: c.Type, Category: c.Category, Search: c.Search}
	var err error
	if strings.TrimSpace(c.From) != "" {
		if f.From, err = core.ParseDate(c.From); err != nil {
			return fmt.Errorf("from %q: %w", c.From, err)
		}
	}
	if strings.TrimSpace(c.To) != "" {
		if f.To, err = core.ParseDate(c.To); err != nil {
			return fmt.Errorf("to %q: %w", c.To, err)
		}
	}

	txs := app.Svc.List(f)
	if len(txs) == 0 {
		fmt.Println("no transactions match")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.ISO(), tx.Type, tx.Category, tx.Amount, tx.Description)
	}
	return tw.Flush()
}

type EditCmd struct {
	ID string `arg:"" help:"Transaction id."`
	txFlags
}

func (c *EditCmd) Run(app *Context) error {
	in, err := c.input()
	if err != nil {
		return err
	}
	tx, err := app.Svc.Update(app.Ctx, c.ID, in)
	if err != nil {
		return err
	}
	fmt.Printf("updated %s\n", tx.ID)
	return nil
}

type RmCmd struct {
	ID string `arg:"" help:"Transaction id."`
}

func (c *RmCmd) Run(app *Context) error {
	if err := app.Svc.Remove(app.Ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", c.ID)
	return nil
}

type ClearCmd struct{}

func (c *ClearCmd) Run(app *Context) error {
	if err := app.Svc.Clear(app.Ctx); err != nil {
		return err
	}
	fmt.Println("ledger cleared")
	return nil
}

type SortCmd struct {
	Criterion string `arg:"" enum:"date,amount" help:"Sort criterion to toggle."`
}

func (c *SortCmd) Run(app *Context) error {
	dir, err := app.Svc.SortBy(view.Criterion(c.Criterion))
	if err != nil {
		return err
	}
	fmt.Printf("sorted by %s %s\n", c.Criterion, dir)
	return nil
}

type SummaryCmd struct{}

func (c *SummaryCmd) Run(app *Context) error {
	s := app.Svc.Summary()
	fmt.Printf("income  %s\n", core.FormatCents(s.TotalIncome))
	fmt.Printf("expense %s\n", core.FormatCents(s.TotalExpense))
	fmt.Printf("balance %s\n", core.FormatCents(s.TotalBalance))

	printShares := func(label string, shares []services.CategoryShare) {
		if len(shares) == 0 {
			return
		}
		fmt.Printf("\n%s:\n", label)
		for _, share := range shares {
			fmt.Printf("  %-14s %10s  %5.1f%%\n",
				share.Category, core.FormatCents(share.Cents), share.Percent)
		}
	}
	printShares("expenses by category", s.ExpenseByCategory)
	printShares("income by category", s.IncomeByCategory)
	return nil
}

type ChartCmd struct {
	Kind string `arg:"" enum:"expense,income" help:"Which breakdown to plot."`
	Out  string `short:"o" default:"breakdown.png" help:"Output PNG path."`
}

func (c *ChartCmd) Run(app *Context) error {
	s := app.Svc.Summary()

	shares := s.ExpenseByCategory
	title := "Expenses by category"
	if c.Kind == "income" {
		shares = s.IncomeByCategory
		title = "Income by category"
	}

	png, err := chart.BreakdownPNG(title, shares)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, png, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Printf("wrote %s\n", c.Out)
	return nil
}
