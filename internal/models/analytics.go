package models

// Overview represents income and expense totals for one owner
type Overview struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"` // TotalIncome - TotalExpense
}

// TypeTotal is one row of the by-type rollup, keyed by the group id
type TypeTotal struct {
	Type  string  `bson:"_id"`
	Total float64 `bson:"total"`
}

// CategoryTotal is one row of the by-category rollup
type CategoryTotal struct {
	Category string  `bson:"_id" json:"category"`
	Total    float64 `bson:"total" json:"total"`
}
