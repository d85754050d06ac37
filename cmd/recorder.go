// Copyright © 2021 The electrical authors

package cmd

import (
	"bytes"
	"encoding/json"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/WesP10/electrical/data"
)

// recorderCmd represents the recorder command
var recorderCmd = &cobra.Command{
	Use:   "recorder",
	Short: "Record published sensor data",
	Long:  `Subscribes to the telemetry channel and stores every fused record in the database.`,
	Run:   recorder,
}

func init() {
	RootCmd.AddCommand(recorderCmd)
}

func recorder(cmd *cobra.Command, args []string) {
	if verbose {
		jww.SetStdoutThreshold(jww.LevelTrace)
	}

	db, err := data.OpenDatabase()
	if err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}
	defer db.Close()

	records := make(chan data.Record)

	opts := MQTT.NewClientOptions().AddBroker(viper.GetString("broker")).SetClientID("recorder").SetCleanSession(true)
	opts.OnConnect = func(c MQTT.Client) {
		if token := c.Subscribe(data.Channel, 0, func(client MQTT.Client, msg MQTT.Message) {
			r := bytes.NewReader(msg.Payload())
			decoder := json.NewDecoder(r)
			var record data.Record
			if err := decoder.Decode(&record); err != nil {
				jww.ERROR.Println(err)
				return
			}
			records <- record
		}); token.Wait() && token.Error() != nil {
			jww.FATAL.Println(token.Error())
			panic(token.Error())
		}
	}

	client := MQTT.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		jww.FATAL.Println(token.Error())
		panic(token.Error())
	}
	defer client.Disconnect(0)

	for record := range records {
		jww.DEBUG.Println("Recording sample from", record.TimeStamp)
		if err := db.InsertRecord(&record); err != nil {
			jww.ERROR.Println(err)
		}
	}
}
