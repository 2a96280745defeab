package session

// Prices are in cents.
const (
	TicketPrice = 1250
	BookingFee  = 250
)

// QuantityChoices are the ticket counts offered after a showtime is
// picked.  6 stands for "5+".
var QuantityChoices = []int{1, 2, 3, 4, 5, 6}

// TotalPrice returns the amount charged for quantity tickets.
func TotalPrice(quantity int) int {
	return quantity*TicketPrice + BookingFee
}
