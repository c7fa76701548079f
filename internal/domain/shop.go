package domain

// Shop is the carwash a booking belongs to
type Shop struct {
	ID      int64
	OwnerID int64
	Name    string
}

// Contact holds what a notification needs to reach the customer
type Contact struct {
	AppointmentID string
	CustomerName  string
	CustomerEmail string
	ShopName      string
}
