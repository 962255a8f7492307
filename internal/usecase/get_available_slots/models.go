package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SpaceID int64     // ID пространства
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date          time.Time     // Дата, на которую запрашивались слоты
	SpaceID       int64         // ID пространства
	TotalCapacity int           // Вместимость пространства
	Slots         []domain.Slot // Слоты с ненулевой свободной вместимостью, по возрастанию начала
}
