package model

// CategoryType indicates whether a category classifies income or
// expense transactions.
type CategoryType string

// Category type constants.
const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Valid reports whether the category type is one of the allowed set.
func (t CategoryType) Valid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category represents a transaction category. Transactions reference
// categories by name; deleting a category leaves referencing
// transactions in place (the delete operation reports how many).
type Category struct {
	ID    string
	Name  string
	Type  CategoryType
	Color string
	Icon  string
}
