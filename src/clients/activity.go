package clients

import (
	"encoding/json"
	"fmt"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// ActivityPublisher publishes user activity messages to RabbitMQ.
type ActivityPublisher struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

func NewActivityPublisher(cfg *config.Configuration, channel *amqp.Channel) *ActivityPublisher {
	return &ActivityPublisher{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

// Publish sends an activity message for the given user and action.
func (p *ActivityPublisher) Publish(userID, serviceName, action string) error {
	return p.PublishWithMetadata(userID, serviceName, action, nil)
}

// PublishWithMetadata sends an activity message with extra fields attached.
func (p *ActivityPublisher) PublishWithMetadata(userID, serviceName, action string, metadata map[string]string) error {
	message := models.ActivityMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Service:   serviceName,
		Action:    action,
		Metadata:  metadata,
		Timestamp: time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal activity message: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish activity message")
		return fmt.Errorf("failed to publish activity message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"service":     serviceName,
		"action":      action,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Activity message published")

	return nil
}
