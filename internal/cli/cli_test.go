package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes a fresh command tree and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"EXPENSES_FILE", "LOG_LEVEL", "LOG_FORMAT", "SAVE_ATTEMPTS", "SAVE_RETRY_DELAY"} {
		t.Setenv(key, "")
	}
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func dataFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "expenses.txt")
}

func TestAddAndList(t *testing.T) {
	path := dataFile(t)

	out, err := run(t, "", "--file", path, "add", "10", "Food", "pizza", "night")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, msgAdded) {
		t.Fatalf("expected success message, got %q", out)
	}
	if _, err := run(t, "", "--file", path, "add", "5,5", "Travel"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err = run(t, "", "--file", path, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "Amount: 10, Category: Food, Description: pizza night\n" +
		"Amount: 5.5, Category: Travel, Description: \n" +
		"Total Expenses: 15.5\n"
	if out != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "10,Food,pizza night\n5.5,Travel,\n" {
		t.Fatalf("unexpected file %q", string(data))
	}
}

func TestAddInvalidAmount(t *testing.T) {
	path := dataFile(t)
	_, err := run(t, "", "--file", path, "add", "-3", "Food")
	if err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file after rejected add")
	}
}

func TestAddNeedsCategory(t *testing.T) {
	if _, err := run(t, "", "--file", dataFile(t), "add", "3"); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestCategories(t *testing.T) {
	path := dataFile(t)
	if err := os.WriteFile(path, []byte("10.0,Food,a\n20.0,Travel,c\n5.0,Food,b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := run(t, "", "--file", path, "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := "Category: Food, Total: 15\nCategory: Travel, Total: 20\n"
	if out != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestEmptyReports(t *testing.T) {
	path := dataFile(t)
	for _, sub := range []string{"list", "categories"} {
		out, err := run(t, "", "--file", path, sub)
		if err != nil {
			t.Fatalf("%s: %v", sub, err)
		}
		if strings.TrimSpace(out) != msgNoExpenses {
			t.Fatalf("%s: expected empty message, got %q", sub, out)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	for _, key := range []string{"EXPENSES_FILE", "LOG_FORMAT", "SAVE_ATTEMPTS", "SAVE_RETRY_DELAY"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "shout")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--file", dataFile(t), "list"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestShellSession(t *testing.T) {
	path := dataFile(t)
	input := strings.Join([]string{
		// empty listing
		"2",
		"1", "10", "Food", "a",
		"1", "5", "Food", "b",
		// rejected before the category prompt
		"1", "-5",
		"1", "abc",
		// empty category
		"1", "3", "", "x",
		"1", "20", "Travel", "c",
		"2",
		"3",
		"9",
		"4",
	}, "\n") + "\n"

	out, err := run(t, input, "--file", path)
	if err != nil {
		t.Fatalf("shell: %v", err)
	}

	for _, want := range []string{
		"=== Daily Expense Tracker ===",
		msgNoExpenses,
		"=== Recorded Expenses ===",
		"Amount: 10, Category: Food, Description: a\nAmount: 5, Category: Food, Description: b\nAmount: 20, Category: Travel, Description: c\nTotal Expenses: 35\n",
		"=== Expenses by Category ===",
		"Category: Food, Total: 15\nCategory: Travel, Total: 20\n",
		msgInvalidChoice,
		msgGoodbye,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if got := strings.Count(out, msgAdded); got != 3 {
		t.Fatalf("expected 3 successful adds, got %d", got)
	}
	if got := strings.Count(out, msgInvalidInput); got != 3 {
		t.Fatalf("expected 3 invalid inputs, got %d", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "10,Food,a\n5,Food,b\n20,Travel,c\n" {
		t.Fatalf("unexpected file %q", string(data))
	}
}

func TestShellEmptyReportsHaveNoHeaders(t *testing.T) {
	out, err := run(t, "2\n3\n4\n", "--file", dataFile(t))
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if got := strings.Count(out, msgNoExpenses); got != 2 {
		t.Fatalf("expected the empty message twice, got %d:\n%s", got, out)
	}
	for _, header := range []string{"=== Recorded Expenses ===", "=== Expenses by Category ==="} {
		if strings.Contains(out, header) {
			t.Fatalf("expected no %q header for an empty store, got:\n%s", header, out)
		}
	}
}

func TestShellEndOfInput(t *testing.T) {
	out, err := run(t, "1\n12\n", "--file", dataFile(t), "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(out, msgGoodbye) {
		t.Fatalf("expected goodbye on end of input, got %q", out)
	}
	if strings.Contains(out, msgAdded) {
		t.Fatalf("nothing should be added when input ends early")
	}
}

func TestShellReportsSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "expenses.txt")
	out, err := run(t, "1\n4\nFood\nx\n2\n4\n", "--file", path)
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(out, "Error saving expenses:") {
		t.Fatalf("expected save error message, got:\n%s", out)
	}
	if !strings.Contains(out, msgNoExpenses) {
		t.Fatalf("expected rolled back store to be empty, got:\n%s", out)
	}
}

func TestMalformedFileStillLoads(t *testing.T) {
	path := dataFile(t)
	if err := os.WriteFile(path, []byte("10.0,Food,a\nbroken line\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := run(t, "", "--file", path, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Total Expenses: 10") {
		t.Fatalf("expected the valid line to load, got %q", out)
	}
}
