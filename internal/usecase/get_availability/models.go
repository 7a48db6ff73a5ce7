package get_availability

import (
	"time"
)

// Request модель запроса доступности объекта на дату
type Request struct {
	FacilityID int64     // ID объекта
	Date       time.Time // Дата (без времени)
}

// SlotAvailability доступность одного слота каталога на одном месте
type SlotAvailability struct {
	SlotID    int64  // ID слота каталога
	Name      string // Метка слота
	Time      string // Окно слота "HH:MM-HH:MM"
	Available bool   // Свободен ли слот
}

// SiteAvailability доступность всех слотов одного места
type SiteAvailability struct {
	SiteID     int64              // ID места
	SiteNumber int                // Номер места
	SiteName   string             // Название места
	Slots      []SlotAvailability // Слоты в порядке каталога
}

// Response модель ответа: матрица место x слот на запрошенную дату
type Response struct {
	FacilityID int64              // ID объекта
	Date       time.Time          // Дата
	Sites      []SiteAvailability // Места в порядке номеров
}
