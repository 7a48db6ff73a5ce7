package quote_reservation

import (
	"time"
)

// Request модель запроса предварительного расчета стоимости
type Request struct {
	FacilityID int64     // ID объекта
	Date       time.Time // Дата бронирования
	TimeSlots  []int64   // ID слотов каталога
}

// Response модель ответа с расчетом стоимости.
// Расчет консультативный: итоговая сумма фиксируется при создании
// бронирования и может отличаться, если цены изменятся
type Response struct {
	FacilityID  int64     // ID объекта
	Date        time.Time // Дата бронирования
	SlotCount   int       // Количество слотов
	UnitPrice   int64     // Цена за один слот на эту дату
	IsWeekend   bool      // Применён ли тариф выходного дня
	TotalAmount int64     // Итоговая стоимость
}
