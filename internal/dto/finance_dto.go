package dto

type TransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Type        *string  `json:"type"`
	// Date is RFC 3339 or YYYY-MM-DD.
	Date *string `json:"date"`
}

func (r *TransactionRequest) Empty() bool {
	return r.Amount == nil && r.Description == nil && r.Category == nil && r.Type == nil && r.Date == nil
}

type CategoryRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	BudgetLimit *float64 `json:"budgetLimit"`
	Color       *string  `json:"color"`
	IsDefault   *bool    `json:"isDefault"`
}

func (r *CategoryRequest) Empty() bool {
	return r.Name == nil && r.Type == nil && r.BudgetLimit == nil && r.Color == nil && r.IsDefault == nil
}

type BudgetCategoryRequest struct {
	CategoryID     string   `json:"categoryId"`
	BudgetedAmount *float64 `json:"budgetedAmount"`
	SpentAmount    *float64 `json:"spentAmount"`
}

type BudgetRequest struct {
	Month       *int                     `json:"month"`
	Year        *int                     `json:"year"`
	TotalBudget *float64                 `json:"totalBudget"`
	TotalSpent  *float64                 `json:"totalSpent"`
	Categories  *[]BudgetCategoryRequest `json:"categories"`
	Notes       *string                  `json:"notes"`
}

func (r *BudgetRequest) Empty() bool {
	return r.Month == nil && r.Year == nil && r.TotalBudget == nil && r.TotalSpent == nil &&
		r.Categories == nil && r.Notes == nil
}
