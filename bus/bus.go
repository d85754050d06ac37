// Copyright © 2021 The electrical authors

// Package bus carries fused records between processes over MQTT.
package bus

import (
	"bytes"
	"encoding/json"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/WesP10/electrical/data"
)

// MQTTSink publishes each record JSON-encoded on the telemetry channel.
// It satisfies fusion.Sink.
type MQTTSink struct {
	client MQTT.Client
}

// Connect dials the broker and returns a ready sink. A broker that cannot
// be reached at startup is fatal to the caller, same as a missing serial
// device.
func Connect(broker, clientID string) (*MQTTSink, error) {
	opts := MQTT.NewClientOptions().AddBroker(broker).SetClientID(clientID).SetCleanSession(true)

	client := MQTT.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &MQTTSink{client: client}, nil
}

func (s *MQTTSink) Publish(r data.Record) error {
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	if err := encoder.Encode(r); err != nil {
		return err
	}
	payload := buf.Bytes()
	if token := s.client.Publish(data.Channel, 0, false, payload); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	jww.DEBUG.Printf("Publishing %s -> %s", data.Channel, payload)
	return nil
}

func (s *MQTTSink) Disconnect() {
	s.client.Disconnect(0)
}
