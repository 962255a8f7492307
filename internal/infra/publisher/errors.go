package publisher

import "errors"

// ErrPublish возвращается, когда событие не удалось отправить
var ErrPublish = errors.New("publisher: failed to publish booking event")
