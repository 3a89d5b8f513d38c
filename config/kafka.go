package config

import (
	"github.com/IBM/sarama"
	"github.com/gofiber/fiber/v2/log"
)

func InitKafkaProducer() sarama.SyncProducer {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(Conf.Application.Kafka.Brokers, cfg)
	if err != nil {
		log.Panic("failed to create kafka producer: ", err)
	}
	return producer
}
