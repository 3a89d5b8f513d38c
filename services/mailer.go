package services

import (
	"encoding/json"

	"passkey_auth_ms/dtos/request"

	"github.com/IBM/sarama"
	"github.com/gofiber/fiber/v2/log"
)

// Topic per event; the notification service owns rendering and delivery.
const (
	TopicVerificationEmail    = "VerificationEmailEvent"
	TopicResetPasswordEmail   = "ResetPasswordEmailEvent"
	TopicPasswordChangedEmail = "PasswordChangedEmailEvent"
)

type IMailerService interface {
	SendVerificationEmail(event *request.VerificationEmailEvent) error
	SendResetPasswordEmail(event *request.ResetPasswordEmailEvent) error
	SendPasswordChangedEmail(event *request.PasswordChangedEmailEvent) error
}

type MailerService struct {
	producer sarama.SyncProducer
}

func NewMailerService(producer sarama.SyncProducer) IMailerService {
	return &MailerService{producer: producer}
}

func (m *MailerService) send(topic string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.StringEncoder(data),
	}
	partition, offset, err := m.producer.SendMessage(msg)
	if err != nil {
		log.Error("failed to publish ", topic, ": ", err)
		return err
	}
	log.Infof("published %s to partition %d at offset %d", topic, partition, offset)
	return nil
}

func (m *MailerService) SendVerificationEmail(event *request.VerificationEmailEvent) error {
	return m.send(TopicVerificationEmail, event)
}

func (m *MailerService) SendResetPasswordEmail(event *request.ResetPasswordEmailEvent) error {
	return m.send(TopicResetPasswordEmail, event)
}

func (m *MailerService) SendPasswordChangedEmail(event *request.PasswordChangedEmailEvent) error {
	return m.send(TopicPasswordChangedEmail, event)
}
