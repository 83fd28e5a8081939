package domain

// Payout is the wire shape returned by the payouts REST resource. Amounts are
// minor units, as transmitted.
type Payout struct {
	ID             string `json:"id"`
	Object         string `json:"object"`
	Amount         int64  `json:"amount"`
	ArrivalDate    int64  `json:"arrival_date"`
	Created        int64  `json:"created"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	Destination    string `json:"destination"`
	FailureCode    string `json:"failure_code,omitempty"`
	FailureMessage string `json:"failure_message,omitempty"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	Type           string `json:"type"`
}

// PayoutList is one page of payouts. The caller follows HasMore with a
// starting_after cursor; nothing loops internally.
type PayoutList struct {
	Object  string   `json:"object"`
	Data    []Payout `json:"data"`
	HasMore bool     `json:"has_more"`
	URL     string   `json:"url"`
}
