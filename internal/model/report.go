package model

// CustomerBreakdown aggregates one customer's delivered orders within a
// report period. Name is the customer name captured on the orders, so it
// reflects the name at order time.
type CustomerBreakdown struct {
	Name   string  `json:"name"`
	Orders int     `json:"orders"`
	Amount float64 `json:"amount"`
}

// MonthlyReport aggregates a vendor's delivered orders for one calendar
// month, grouped by delivery date. PerCustomer is keyed by customer ID.
type MonthlyReport struct {
	Month        string                       `json:"month"`
	Year         int                          `json:"year"`
	TotalOrders  int                          `json:"totalOrders"`
	TotalRevenue float64                      `json:"totalRevenue"`
	PerCustomer  map[string]CustomerBreakdown `json:"customerBreakdown"`
}
