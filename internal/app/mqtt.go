// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// connectMQTT dials the broker and blocks until the connection is up.
func connectMQTT(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return client, nil
}

// subscribe registers handler on topic and waits for the broker to ack.
func subscribe(client mqtt.Client, topic string, handler func(payload []byte)) error {
	token := client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", topic, token.Error())
	}
	return nil
}

// publisher is the slice of an MQTT client the GGA producer needs.
type publisher interface {
	Publish(topic string, retained bool, payload []byte) error
}

type mqttPublisher struct {
	client mqtt.Client
}

func (p mqttPublisher) Publish(topic string, retained bool, payload []byte) error {
	token := p.client.Publish(topic, 0, retained, payload)
	token.Wait()
	return token.Error()
}
