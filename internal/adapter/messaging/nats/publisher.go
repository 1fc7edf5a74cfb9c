package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

// Publisher broadcasts listing lifecycle events as JSON messages.
type Publisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

func NewPublisher(url string, log *logger.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, logger: log}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return err
	}
	p.logger.Debug("Publisher: event published", "subject", subject)
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
