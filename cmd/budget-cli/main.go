package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/ledgerworks/budget-ledger/internal/client"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cli struct {
	api      *client.Client
	sessions *client.SessionStore
	in       *bufio.Reader
	stdin    io.Reader
	out      io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("budget-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	serverURL := fs.String("server", defaultServerURL(), "Base URL of the budget ledger API")
	sessionPath := fs.String("sessions", defaultSessionPath(), "Path to the session file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	sessions, err := client.NewSessionStore(*sessionPath)
	if err != nil {
		return err
	}

	app := &cli{
		api:      client.NewClient(*serverURL),
		sessions: sessions,
		in:       bufio.NewReader(stdin),
		stdin:    stdin,
		out:      stdout,
	}
	return app.menuLoop()
}

func defaultServerURL() string {
	if url := os.Getenv("BL_API_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sessions.json"
	}
	return filepath.Join(home, ".budget-ledger", "sessions.json")
}

func (c *cli) menuLoop() error {
	for {
		active := "(not logged in)"
		if session, ok := c.sessions.ActiveSession(); ok {
			active = session.Username
		}
		fmt.Fprintf(c.out, "\n== budget ledger == %s\n", active)
		fmt.Fprintln(c.out, " 1) register          6) monthly overview")
		fmt.Fprintln(c.out, " 2) login             7) update record")
		fmt.Fprintln(c.out, " 3) add category      8) update category budget")
		fmt.Fprintln(c.out, " 4) add transaction   9) delete record")
		fmt.Fprintln(c.out, " 5) list tables      10) add recurring payment")
		fmt.Fprintln(c.out, " q) quit")

		choice, err := c.prompt("choice> ")
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = c.register()
		case "2":
			actionErr = c.login()
		case "3":
			actionErr = c.addCategory()
		case "4":
			actionErr = c.addTransaction()
		case "5":
			actionErr = c.listTables()
		case "6":
			actionErr = c.overview()
		case "7":
			actionErr = c.updateRecord()
		case "8":
			actionErr = c.updateBudget()
		case "9":
			actionErr = c.deleteRecord()
		case "10":
			actionErr = c.addPayment()
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintln(c.out, "unknown choice")
			continue
		}

		if actionErr != nil {
			fmt.Fprintf(c.out, "error: %v\n", actionErr)
		}
	}
}

// sessionContext attaches the active login's token; operations that need a
// login fail fast without one
func (c *cli) sessionContext() (context.Context, error) {
	session, ok := c.sessions.ActiveSession()
	if !ok {
		return nil, fmt.Errorf("not logged in")
	}
	return client.WithToken(context.Background(), session.Token), nil
}

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *cli) promptPassword(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}
	return c.prompt("")
}

func (c *cli) register() error {
	username, err := c.prompt("username: ")
	if err != nil {
		return err
	}
	password, err := c.promptPassword("password: ")
	if err != nil {
		return err
	}

	account, err := c.api.Register(context.Background(), username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "account %q created (id %d), now log in\n", account.Username, account.ID)
	return nil
}

func (c *cli) login() error {
	username, err := c.prompt("username: ")
	if err != nil {
		return err
	}
	password, err := c.promptPassword("password: ")
	if err != nil {
		return err
	}

	token, err := c.api.Login(context.Background(), username, password)
	if err != nil {
		return err
	}
	c.sessions.Put(username, token, time.Now())
	if err := c.sessions.Save(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "logged in as %s\n", username)
	return nil
}

func (c *cli) addCategory() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	name, err := c.prompt("category name: ")
	if err != nil {
		return err
	}
	budget, err := c.prompt("monthly budget (e.g. 200.00): ")
	if err != nil {
		return err
	}

	category, err := c.api.CreateCategory(ctx, name, budget)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "created %q with budget %s\n", category.Name, category.Budget)
	return nil
}

func (c *cli) addTransaction() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	req := dto.CreateTransactionRequest{}
	if req.Name, err = c.prompt("name: "); err != nil {
		return err
	}
	if req.Cost, err = c.prompt("cost (e.g. 12.50): "); err != nil {
		return err
	}
	if req.Category, err = c.prompt("category: "); err != nil {
		return err
	}
	if req.Date, err = c.prompt("date (YYYY-MM-DD): "); err != nil {
		return err
	}

	result, err := c.api.CreateTransaction(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "recorded; %s spent of %s", result.Spent, result.TotalBudget)
	if result.Notice != "" {
		fmt.Fprintf(c.out, "  [%s]", result.Notice)
	}
	fmt.Fprintln(c.out)
	return nil
}

func (c *cli) addPayment() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	req := dto.CreatePaymentRequest{}
	if req.Name, err = c.prompt("name: "); err != nil {
		return err
	}
	if req.Cost, err = c.prompt("cost (e.g. 9.99): "); err != nil {
		return err
	}
	if req.Category, err = c.prompt("category: "); err != nil {
		return err
	}
	if req.DueDate, err = c.prompt("due date (YYYY-MM-DD): "); err != nil {
		return err
	}

	payment, err := c.api.CreatePayment(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "payment %d saved\n", payment.ID)
	return nil
}

func (c *cli) listTables() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	table, err := c.prompt("table (categories/transactions/recurringpayments): ")
	if err != nil {
		return err
	}

	switch table {
	case "categories":
		rows, err := c.api.QueryCategories(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Fprintf(c.out, "%4d  %-20s  budget %-10s  spent %s\n", row.ID, row.Name, row.Budget, row.Spent)
		}
	case "transactions":
		rows, err := c.api.QueryTransactions(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Fprintf(c.out, "%4d  %s  %-20s  %-15s  %s\n", row.ID, row.Date, row.Name, row.Category, row.Cost)
		}
	case "recurringpayments":
		rows, err := c.api.QueryPayments(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Fprintf(c.out, "%4d  due %s  %-20s  %-15s  %s\n", row.ID, row.DueDate, row.Name, row.Category, row.Cost)
		}
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	return nil
}

func (c *cli) overview() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	month, err := c.promptInt("month (1-12): ")
	if err != nil {
		return err
	}
	year, err := c.promptInt("year: ")
	if err != nil {
		return err
	}

	report, err := c.api.Overview(ctx, month, year)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s .. %s  total %s\n", report.BeginRange, report.EndRange, report.Sum)
	for i, entry := range report.Top {
		fmt.Fprintf(c.out, "  %d. %s  %-20s  %s\n", i+1, entry.Date, entry.Name, entry.Cost)
	}
	return nil
}

func (c *cli) updateRecord() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	req := dto.UpdateRequest{}
	if req.Table, err = c.prompt("table (transactions/recurringpayments): "); err != nil {
		return err
	}
	id, err := c.promptInt("record id: ")
	if err != nil {
		return err
	}
	req.ID = uint64(id)

	field, err := c.prompt("field (name/cost/category/date): ")
	if err != nil {
		return err
	}
	value, err := c.prompt("new value: ")
	if err != nil {
		return err
	}

	switch field {
	case "name":
		req.NewName = &value
	case "cost":
		req.NewCost = &value
	case "category":
		req.NewCategory = &value
	case "date":
		req.NewDate = &value
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	result, err := c.api.Update(ctx, req)
	if err != nil {
		return err
	}
	if result.Spent != "" {
		fmt.Fprintf(c.out, "record %d updated; category spend is now %s\n", result.ID, result.Spent)
	} else {
		fmt.Fprintf(c.out, "record %d updated\n", result.ID)
	}
	return nil
}

func (c *cli) updateBudget() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	category, err := c.prompt("category: ")
	if err != nil {
		return err
	}
	budget, err := c.prompt("new budget (e.g. 250.00): ")
	if err != nil {
		return err
	}

	result, err := c.api.UpdateCategoryBudget(ctx, category, budget)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "budget updated; %s already spent", result.Spent)
	if result.Notice != "" {
		fmt.Fprintf(c.out, "  [%s]", result.Notice)
	}
	fmt.Fprintln(c.out)
	return nil
}

func (c *cli) deleteRecord() error {
	ctx, err := c.sessionContext()
	if err != nil {
		return err
	}

	table, err := c.prompt("table (categories/transactions/recurringpayments): ")
	if err != nil {
		return err
	}

	switch table {
	case "categories":
		name, err := c.prompt("category name: ")
		if err != nil {
			return err
		}
		replacement, err := c.prompt("move transactions to (blank if none): ")
		if err != nil {
			return err
		}
		if err := c.api.DeleteCategory(ctx, name, replacement); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "category %q deleted\n", name)
	case "transactions", "recurringpayments":
		id, err := c.promptInt("record id: ")
		if err != nil {
			return err
		}
		if table == "transactions" {
			err = c.api.DeleteTransaction(ctx, uint64(id))
		} else {
			err = c.api.DeletePayment(ctx, uint64(id))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "record %d deleted\n", id)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	return nil
}

func (c *cli) promptInt(label string) (int, error) {
	raw, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return value, nil
}
