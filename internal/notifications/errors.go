package notifications

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось отправить в очередь
	ErrPublish = errors.New("notifications: failed to publish event")

	// ErrUnknownKind возвращается для события без шаблона письма
	ErrUnknownKind = errors.New("notifications: unknown event kind")

	// ErrRender возвращается при ошибке подстановки данных в шаблон
	ErrRender = errors.New("notifications: failed to render message")
)
