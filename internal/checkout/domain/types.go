package domain

// State names one step of the checkout precondition sequence. Preconditions
// are evaluated strictly in order: cart, then identity, then address. A later
// check never runs before an earlier one has passed.
type State int

const (
	StateIdle State = iota
	StateCartChecked
	StateIdentityChecked
	StateAddressChecked
	StateConfirming
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCartChecked:
		return "cart-checked"
	case StateIdentityChecked:
		return "identity-checked"
	case StateAddressChecked:
		return "address-checked"
	case StateConfirming:
		return "confirming"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type SummaryLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

// Summary is what the user confirms: the quoted lines, the total, and the
// shipping address the order will go to.
type Summary struct {
	Lines       []SummaryLine `json:"lines"`
	Total       Money         `json:"total"`
	Email       string        `json:"email"`
	AddressText string        `json:"address_text"`
}
