package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrDuplicateSpotCode возвращается при повторе кода места в локации
	ErrDuplicateSpotCode = errors.New("slot.repository: duplicate spot code")

	// ErrLockConflict возвращается, когда строку слота не удалось заблокировать из-за конкурирующей транзакции
	ErrLockConflict = errors.New("slot.repository: slot is locked by a concurrent transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
