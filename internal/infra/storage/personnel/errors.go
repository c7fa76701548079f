package personnel

import "errors"

var (
	// ErrPersonnelNotFound возвращается, когда сотрудник не найден
	ErrPersonnelNotFound = errors.New("personnel.repository: personnel not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("personnel.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("personnel.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("personnel.repository: failed to scan row")
)
