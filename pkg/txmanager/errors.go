package txmanager

import "errors"

var (
	// ErrTransaction возвращается при ошибках начала или фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrRetriesExhausted возвращается, когда сериализуемая транзакция не удалась после всех повторов
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)
