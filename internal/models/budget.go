package models

import (
	"encoding/json"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BudgetCategory struct {
	CategoryID     primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	BudgetedAmount float64            `bson:"budgetedAmount" json:"budgetedAmount"`
	SpentAmount    float64            `bson:"spentAmount" json:"spentAmount"`
}

// Budget is unique per (UserID, Month, Year).
type Budget struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Month       int                `bson:"month" json:"month"`
	Year        int                `bson:"year" json:"year"`
	TotalBudget float64            `bson:"totalBudget" json:"totalBudget"`
	TotalSpent  float64            `bson:"totalSpent" json:"totalSpent"`
	Categories  []BudgetCategory   `bson:"categories" json:"categories"`
	Notes       string             `bson:"notes" json:"notes"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (b *Budget) RemainingBudget() float64 {
	return b.TotalBudget - b.TotalSpent
}

func (b *Budget) UtilizationPercentage() int {
	return UtilizationPercentage(b.TotalSpent, b.TotalBudget)
}

func (b *Budget) IsOverBudget() bool {
	return b.TotalSpent > b.TotalBudget
}

// Category returns the budget line for categoryID, or nil.
func (b *Budget) Category(categoryID primitive.ObjectID) *BudgetCategory {
	for i := range b.Categories {
		if b.Categories[i].CategoryID == categoryID {
			return &b.Categories[i]
		}
	}
	return nil
}

// MarshalJSON adds the derived fields.
func (b Budget) MarshalJSON() ([]byte, error) {
	type plain Budget
	categories := b.Categories
	if categories == nil {
		categories = []BudgetCategory{}
	}
	p := plain(b)
	p.Categories = categories
	return json.Marshal(struct {
		plain
		RemainingBudget       float64 `json:"remainingBudget"`
		UtilizationPercentage int     `json:"utilizationPercentage"`
		IsOverBudget          bool    `json:"isOverBudget"`
	}{
		plain:                 p,
		RemainingBudget:       b.RemainingBudget(),
		UtilizationPercentage: b.UtilizationPercentage(),
		IsOverBudget:          b.IsOverBudget(),
	})
}

// UtilizationPercentage is round(spent/budget*100), or 0 for a zero budget.
func UtilizationPercentage(spent, budget float64) int {
	if budget == 0 {
		return 0
	}
	return int(math.Round(spent / budget * 100))
}

type BudgetFilter struct {
	UserID primitive.ObjectID
	Year   int
	Month  int
}

type MonthlyBudgetSummary struct {
	Month                 int     `json:"month"`
	Budgeted              float64 `json:"budgeted"`
	Spent                 float64 `json:"spent"`
	Remaining             float64 `json:"remaining"`
	UtilizationPercentage int     `json:"utilizationPercentage"`
}

type BudgetSummary struct {
	Year                         int                    `json:"year"`
	TotalBudgets                 int                    `json:"totalBudgets"`
	TotalBudgetedAmount          float64                `json:"totalBudgetedAmount"`
	TotalSpentAmount             float64                `json:"totalSpentAmount"`
	OverallUtilizationPercentage int                    `json:"overallUtilizationPercentage"`
	MonthlyBreakdown             []MonthlyBudgetSummary `json:"monthlyBreakdown"`
}
