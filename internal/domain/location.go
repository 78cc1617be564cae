package domain

import (
	"fmt"
	"strings"
	"time"
)

// LocationType тип парковки
type LocationType string

const (
	LocationMall    LocationType = "MALL"
	LocationBandara LocationType = "BANDARA" // аэропорт
	LocationGedung  LocationType = "GEDUNG"  // офисное здание
)

// LocationTypes все допустимые типы
var LocationTypes = []LocationType{LocationMall, LocationBandara, LocationGedung}

// ParseLocationType разбирает тип без учета регистра
func ParseLocationType(s string) (LocationType, bool) {
	t := LocationType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range LocationTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// SpotPrefix буква, с которой начинаются коды мест
func (t LocationType) SpotPrefix() string {
	switch t {
	case LocationMall:
		return "M"
	case LocationBandara:
		return "B"
	case LocationGedung:
		return "G"
	default:
		return "P"
	}
}

// Location парковочная локация
type Location struct {
	ID         int64
	Name       string
	Address    string
	Type       LocationType
	TotalSlots int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LocationsFilter фильтр списка локаций
type LocationsFilter struct {
	Query string        // Подстрока названия или адреса (без учета регистра)
	Type  *LocationType // Фильтр по типу (опционально)
	Page  Page
}

// SpotCode код места: буква типа и трехзначный номер, например M-001
func SpotCode(t LocationType, n int) string {
	return fmt.Sprintf("%s-%03d", t.SpotPrefix(), n)
}

// SpotCodes коды мест с номерами [from, to]
func SpotCodes(t LocationType, from, to int) []string {
	if to < from {
		return nil
	}
	codes := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		codes = append(codes, SpotCode(t, n))
	}
	return codes
}
