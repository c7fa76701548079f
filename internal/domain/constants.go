package domain

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxReasonLength      = 500
	MaxServiceNameLength = 255
	MaxReceiptURLLength  = 2048

	MaxPaymentMethodLength = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Well-known payment methods. Any other non-empty method is accepted as given.
var PaymentMethods = []string{
	"Cash",
	"GCash",
	"Card",
	"Bank Transfer",
}
