package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64            // ID пользователя
	SpaceID     int64            // ID пространства
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	EndTime     types.TimeString // Время окончания (например, "12:00", "24:00" - конец дня)
	PeopleCount int              // Количество людей
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64            // ID созданного бронирования
	UserID         int64            // ID пользователя
	SpaceID        int64            // ID пространства
	Date           time.Time        // Дата бронирования
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время окончания
	PeopleCount    int              // Количество людей
	Status         string           // Статус бронирования (pending до оплаты)
	PricePerPerson decimal.Decimal  // Цена за человека
	TotalPrice     decimal.Decimal  // Итоговая цена

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
