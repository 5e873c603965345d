package model

// CategorySales aggregates one category's sales for a day. PeopleCovered
// counts headcount (max_usage), so a 10-person package ticket contributes 1
// to TicketsSold and 10 to PeopleCovered.
type CategorySales struct {
	CategoryName  string  `json:"category_name"`
	TicketsSold   int     `json:"tickets_sold"`
	PeopleCovered int     `json:"people_covered"`
	Revenue       float64 `json:"revenue"`
}

// ShiftSales aggregates sales per work shift (Pagi/Siang/Sore).
type ShiftSales struct {
	Shift       string  `json:"shift"`
	TicketsSold int     `json:"tickets_sold"`
	Revenue     float64 `json:"revenue"`
}

// DailyReport is the admin daily summary. FullyUsed counts tickets whose
// usage_count reached max_usage; partially consumed package tickets are
// reported through UsesRedeemed instead of a status flag.
type DailyReport struct {
	Date          string          `json:"date"`
	TicketsSold   int             `json:"tickets_sold"`
	PeopleCovered int             `json:"people_covered"`
	Revenue       float64         `json:"revenue"`
	UsesRedeemed  int             `json:"uses_redeemed"`
	FullyUsed     int             `json:"fully_used"`
	Categories    []CategorySales `json:"categories"`
	Shifts        []ShiftSales    `json:"shifts"`
}
