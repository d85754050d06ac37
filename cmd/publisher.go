// Copyright © 2021 The electrical authors

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/WesP10/electrical/bus"
	"github.com/WesP10/electrical/fusion"
	"github.com/WesP10/electrical/serial"
)

// publisherCmd represents the publisher command
var publisherCmd = &cobra.Command{
	Use:     "publisher",
	Aliases: []string{"pub"},
	Short:   "Publish fused sensor records",
	Long: `Reads the attitude/environment and ranging/pressure boards over their
serial links, fuses every frame into the composite sensor record, and
publishes the record on the telemetry bus once per cycle. Runs until killed
or until a serial link fails.`,
	Run: publisher,
}

func init() {
	RootCmd.AddCommand(publisherCmd)

	publisherCmd.Flags().String("attitudePort", "/dev/ttyACM0", "Serial port of the attitude/environment board")
	publisherCmd.Flags().String("rangingPort", "/dev/ttyACM1", "Serial port of the ranging/pressure board")
	publisherCmd.Flags().Int("baud", 9600, "Serial baud rate")
	publisherCmd.Flags().Duration("pace", 500*time.Millisecond, "Pacing delay after the serial reads")
	publisherCmd.Flags().Duration("interval", time.Second, "Publish interval")

	viper.BindPFlags(publisherCmd.Flags())
}

func publisher(cmd *cobra.Command, args []string) {
	if verbose {
		jww.SetStdoutThreshold(jww.LevelTrace)
	}

	attitude, err := serial.Open(viper.GetString("attitudePort"), viper.GetInt("baud"))
	if err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}
	defer attitude.Close()

	ranging, err := serial.Open(viper.GetString("rangingPort"), viper.GetInt("baud"))
	if err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}
	defer ranging.Close()

	// Both boards reset when their port opens; let them boot before the
	// first frame read.
	if err := attitude.Settle(); err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}
	if err := ranging.Settle(); err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}

	sink, err := bus.Connect(viper.GetString("broker"), "publisher")
	if err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}
	defer sink.Disconnect()

	jww.INFO.Println("Publishing on", viper.GetString("broker"))

	sched := fusion.NewScheduler(attitude, ranging, sink,
		viper.GetDuration("pace"), viper.GetDuration("interval"))
	if err := sched.Run(); err != nil {
		jww.FATAL.Println(err)
		panic(err)
	}
}
