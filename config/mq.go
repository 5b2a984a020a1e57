package config

import (
	"github.com/streadway/amqp"
)

// LinkTitleQueue carries entry IDs whose note URLs still need titles resolved.
const LinkTitleQueue = "link_title_queue"

var MQConn *amqp.Connection
var MQChannel *amqp.Channel

func InitRabbitMQ() {
	var err error
	MQConn, err = amqp.Dial(Cfg.MQ.URL)
	if err != nil {
		Log.Fatal().Err(err).Msg("rabbitmq connect failed")
	}

	MQChannel, err = MQConn.Channel()
	if err != nil {
		Log.Fatal().Err(err).Msg("rabbitmq channel failed")
	}

	if _, err := MQChannel.QueueDeclare(LinkTitleQueue, true, false, false, false, nil); err != nil {
		Log.Fatal().Err(err).Str("queue", LinkTitleQueue).Msg("queue declare failed")
	}

	Log.Info().Msg("rabbitmq ready")
}
