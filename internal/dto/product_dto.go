package dto

// ProductRequest serves both create (all fields required) and update
// (only supplied fields applied).
type ProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	InStock     *bool    `json:"inStock"`
}

func (r *ProductRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil && r.Category == nil && r.InStock == nil
}
