package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseBudgetDay_DayFirstFormat(t *testing.T) {
	parsed, err := ParseBudgetDay("15/01/2025")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("Expected %v, got %v", want, parsed)
	}

	if got := FormatBudgetDay(parsed); got != "15/01/2025" {
		t.Errorf("Expected round trip, got %s", got)
	}
}

func TestParseBudgetDay_RejectsOtherFormats(t *testing.T) {
	if _, err := ParseBudgetDay("2025-01-15"); err == nil {
		t.Error("Expected error for ISO date")
	}
}

func TestCategory_DisplayNameCapitalizes(t *testing.T) {
	c := &Category{ID: "c1", Name: "groceries"}
	if got := c.DisplayName(); got != "Groceries" {
		t.Errorf("Expected 'Groceries', got %s", got)
	}

	var nilCategory *Category
	if got := nilCategory.DisplayName(); got != "" {
		t.Errorf("Expected empty name for nil category, got %s", got)
	}
}

func TestBudgetCreate_Validate(t *testing.T) {
	valid := BudgetCreate{
		CategoryName: "food",
		Amount:       decimal.NewFromInt(1000),
		StartDate:    "01/01/2025",
		EndDate:      "31/01/2025",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	missingName := valid
	missingName.CategoryName = ""
	if err := missingName.Validate(); err != ErrNameRequired {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}

	negative := valid
	negative.Amount = decimal.NewFromInt(-5)
	if err := negative.Validate(); err != ErrAmountRequired {
		t.Errorf("Expected ErrAmountRequired, got %v", err)
	}

	badDate := valid
	badDate.StartDate = "January 1"
	if err := badDate.Validate(); err != ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestTransactionCreate_Validate(t *testing.T) {
	expense := TransactionCreate{
		Type:       TransactionTypeExpense,
		Amount:     decimal.NewFromInt(300),
		Date:       time.Now(),
		CategoryID: "c1",
	}
	if err := expense.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expense.CategoryID = ""
	if err := expense.Validate(); err != ErrCategoryRequired {
		t.Errorf("Expected ErrCategoryRequired, got %v", err)
	}

	income := TransactionCreate{
		Type:   TransactionTypeIncome,
		Amount: decimal.NewFromInt(100),
		Date:   time.Now(),
	}
	if err := income.Validate(); err != ErrSourceRequired {
		t.Errorf("Expected ErrSourceRequired, got %v", err)
	}

	unknown := TransactionCreate{Type: "transfer", Amount: decimal.NewFromInt(1)}
	if err := unknown.Validate(); err != ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
