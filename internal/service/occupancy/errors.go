package occupancy

import "errors"

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("occupancy: internal error")
