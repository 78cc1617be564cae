package domain

import "time"

// MinBillableHours минимальное оплачиваемое время
const MinBillableHours = 1

// BillableHours длительность, округленная вверх до целого часа, но не меньше MinBillableHours
func BillableHours(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return MinBillableHours
	}

	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < MinBillableHours {
		hours = MinBillableHours
	}
	return hours
}

// CalculatePrice стоимость парковки на [start, end) по почасовому тарифу
func CalculatePrice(start, end time.Time, hourlyRate int64) int64 {
	return BillableHours(start, end) * hourlyRate
}
