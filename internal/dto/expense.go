package dto

type CreateExpenseRequest struct {
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Note     string   `json:"note"`
	Date     string   `json:"date"`
	Origin   string   `json:"origin,omitempty"`
}

type BreakdownItem struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

type BreakdownResult struct {
	From  string          `json:"from,omitempty"`
	To    string          `json:"to,omitempty"`
	Items []BreakdownItem `json:"items"`
}
