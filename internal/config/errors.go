package config

import "errors"

var (
	// ErrReadConfig ошибка чтения или разбора config.toml
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrReadEnv ошибка чтения .env или переменных окружения
	ErrReadEnv = errors.New("config: failed to read environment")

	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
