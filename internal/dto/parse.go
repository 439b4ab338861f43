package dto

type ParseRequest struct {
	Message string `json:"message"`
}

// ParsedCandidate is the raw structured guess decoded from the completion
// oracle's text. Amount is a pointer so a missing field is distinguishable
// from zero; a non-numeric amount fails decoding rather than being coerced.
type ParsedCandidate struct {
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
	Note     string   `json:"note"`
}
