package services

import "github.com/shopspring/decimal"

// addMoney adds b to a in decimal space and floors the result at zero.
func addMoney(a, b float64) float64 {
	sum := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b))
	if sum.IsNegative() {
		return 0
	}
	return sum.InexactFloat64()
}

func sumMoney(values []float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}
