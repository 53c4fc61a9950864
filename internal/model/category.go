package model

// Well-known category names the engine assigns outside of rule matching.
const (
	CategoryIncome         = "Income"
	CategoryShopping       = "Shopping"
	CategoryTransportation = "Transportation"
	CategoryDining         = "Dining"
	CategoryTransfers      = "Transfers"
	CategoryUncategorized  = "Uncategorized"
)
