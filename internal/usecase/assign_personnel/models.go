package assign_personnel

// Request модель запроса на назначение сотрудника
type Request struct {
	AppointmentID string
	OwnerID       int64 // Пользователь, выполняющий назначение
	PersonnelID   int64
}

// Response модель ответа после назначения
type Response struct {
	AppointmentID string
	PersonnelID   int64
	FullName      string
}
