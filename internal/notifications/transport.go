package notifications

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	TransportGoChannel = "gochannel"
	TransportAMQP      = "amqp"

	handlerName = "booking_notifications_handler"
)

// TransportConfig параметры очереди уведомлений
type TransportConfig struct {
	Transport    string
	AMQPURL      string
	Topic        string
	PoisonTopic  string
	MaxRetries   int
	RetryBackoff time.Duration
}

// PubSub пара publisher/subscriber выбранного транспорта
type PubSub struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Close закрывает publisher и subscriber
func (p *PubSub) Close() error {
	pubErr := p.Publisher.Close()
	subErr := p.Subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

// NewPubSub создает транспорт: in-process gochannel или durable очередь RabbitMQ
func NewPubSub(cfg TransportConfig, logger watermill.LoggerAdapter) (*PubSub, error) {
	switch cfg.Transport {
	case TransportGoChannel, "":
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger)
		return &PubSub{Publisher: ch, Subscriber: ch}, nil

	case TransportAMQP:
		amqpCfg := amqp.NewDurableQueueConfig(cfg.AMQPURL)

		publisher, err := amqp.NewPublisher(amqpCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create amqp publisher: %w", err)
		}

		subscriber, err := amqp.NewSubscriber(amqpCfg, logger)
		if err != nil {
			_ = publisher.Close()
			return nil, fmt.Errorf("failed to create amqp subscriber: %w", err)
		}

		return &PubSub{Publisher: publisher, Subscriber: subscriber}, nil
	}

	return nil, fmt.Errorf("unknown notifications transport %q", cfg.Transport)
}

// NewRouter собирает watermill router с консьюмером уведомлений.
// Сообщение повторяется MaxRetries раз, после чего уходит в PoisonTopic.
func NewRouter(cfg TransportConfig, ps *PubSub, consumer *Consumer, logger watermill.LoggerAdapter) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	poisonQueue, err := middleware.PoisonQueue(ps.Publisher, cfg.PoisonTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to create poison queue middleware: %w", err)
	}

	router.AddMiddleware(
		poisonQueue,
		middleware.Retry{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.RetryBackoff,
			Multiplier:      2,
			Logger:          logger,
		}.Middleware,
		middleware.Recoverer,
	)

	router.AddNoPublisherHandler(handlerName, cfg.Topic, ps.Subscriber, consumer.Handle)

	return router, nil
}
