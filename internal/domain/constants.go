package domain

// Форматы времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Пагинация
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Ограничения входных данных
const (
	MaxLocationNameLength    = 120
	MaxLocationAddressLength = 255
	MinLocationSlots         = 1
	MaxLocationSlots         = 999 // Код места трехзначный
)

// Page параметры страницы
type Page struct {
	Page  int
	Limit int
}

// NewPage нормализует номер страницы и размер
func NewPage(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset смещение для SQL
func (p Page) Offset() uint64 {
	if p.Page < 1 {
		return 0
	}
	return uint64((p.Page - 1) * p.Limit)
}

// PageLimit размер страницы для SQL
func (p Page) PageLimit() uint64 {
	if p.Limit < 1 {
		return DefaultLimit
	}
	return uint64(p.Limit)
}
