package domain

// Address mirrors the processor's address shape. Country drives the
// KYC payload variant.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type PersonName struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type DateOfBirth struct {
	Day   int64 `json:"day"`
	Month int64 `json:"month"`
	Year  int64 `json:"year"`
}

// VerificationDocs references previously uploaded identity document files.
type VerificationDocs struct {
	FrontFileID string `json:"front,omitempty"`
	BackFileID  string `json:"back,omitempty"`
}

// AccountCategory distinguishes individual sellers from registered businesses.
type AccountCategory string

const (
	CategoryIndividual AccountCategory = "Individual"
	CategoryBusiness   AccountCategory = "Business"
)

// KYCRequest is the country-conditional identity submission for a connected
// account. SSNLast4 and PersonalIDNumber are US-only optionals; for IN the
// PersonalIDNumber is mandatory and tagged as a PAN.
type KYCRequest struct {
	AccountID        string
	Email            string
	Phone            string
	Name             PersonName
	Address          Address
	DOB              DateOfBirth
	RemoteIP         string
	Docs             *VerificationDocs
	SSNLast4         string
	PersonalIDNumber string
	Category         AccountCategory
}

// ChargeRequest describes a direct charge or a payment intent. Amount and
// VendorAmount are major units; the gateway converts once.
type ChargeRequest struct {
	CustomerID          string
	VendorID            string
	Amount              float64
	VendorAmount        float64
	Currency            string
	Description         string
	ReceiptEmail        string
	StatementDescriptor string
	TransferGroup       string
	NoCapture           bool
	IdempotencyKey      string
}

// BankAccountRequest attaches an external bank account to a connected account.
type BankAccountRequest struct {
	AccountID         string
	Country           string
	Currency          string
	AccountNumber     string
	RoutingNumber     string
	AccountHolderName string
}

// TransferInstruction is one leg of a multi-way transfer payment. Reference is
// an opaque caller tag carried through to the result untouched.
type TransferInstruction struct {
	AccountID string  `json:"stripe_id"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference,omitempty"`
}

// TransferResult is a TransferInstruction joined with the remote transfer id.
type TransferResult struct {
	TransferInstruction
	TransferID string `json:"id"`
}
