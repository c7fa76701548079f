package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrRejected возвращается, когда почтовый сервис отклонил письмо (4xx); повтор не поможет
	ErrRejected = errors.New("mailer client: message rejected")

	// ErrUnavailable возвращается при недоступности сервиса (5xx, timeout, разомкнутый breaker)
	ErrUnavailable = errors.New("mailer client: service unavailable")
)
