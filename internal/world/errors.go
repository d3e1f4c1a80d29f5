package world

import "errors"

// Типизированные ошибки карты. Операции на границе пакета (World.Query,
// World.TileAt) валидируют вход и возвращают их обёрнутыми через %w;
// внутренние помощники получают уже проверенные координаты, и нарушение
// контракта там означает ошибку вызывающего кода, а не данных.
var (
	// ErrInvalidLayer — индекс слоя вне сконфигурированного диапазона глубин
	ErrInvalidLayer = errors.New("слой вне диапазона мира")

	// ErrOutOfBounds — локальная координата вне границ чанка.
	// Недостижима при корректных вызывающих: нарушение контракта.
	ErrOutOfBounds = errors.New("локальная координата вне чанка")

	// ErrGeneration зарезервирована для генераторов, способных отказать
	// (например, внешний источник данных). Шумовой генератор не отказывает.
	ErrGeneration = errors.New("ошибка генерации чанка")

	// ErrUnsupportedChunkSize — запрошен размер чанка, отличный от 16
	ErrUnsupportedChunkSize = errors.New("неподдерживаемый размер чанка")

	// ErrUnknownTile — попытка записать незарегистрированный тип тайла
	ErrUnknownTile = errors.New("неизвестный тип тайла")
)
