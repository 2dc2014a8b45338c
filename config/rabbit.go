package config

import (
	"blogapp/global"

	amqp "github.com/rabbitmq/amqp091-go"
)

func initRabbit() {
	url := AppConfig.RabbitMQ.Url
	if url == "" {
		global.Log.Info("rabbitmq url empty, article events handled inline")
		return
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		global.Log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		global.Log.Fatalf("Failed to open RabbitMQ channel: %v", err)
	}

	qname := AppConfig.RabbitMQ.Queue
	if _, err := ch.QueueDeclare(qname, true, false, false, false, nil); err != nil {
		global.Log.Fatalf("Failed to declare RabbitMQ queue: %v", err)
	}

	global.RabbitConn = conn
	global.RabbitChannel = ch
	global.Log.WithField("queue", qname).Info("RabbitMQ initialized")
}

// CloseRabbit releases the channel and connection opened by initRabbit.
func CloseRabbit() {
	if global.RabbitChannel != nil {
		_ = global.RabbitChannel.Close()
	}
	if global.RabbitConn != nil {
		_ = global.RabbitConn.Close()
	}
}
