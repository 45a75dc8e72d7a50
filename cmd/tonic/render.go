package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dudk/tonic/mp3"
	"github.com/dudk/tonic/signal"
	"github.com/dudk/tonic/wav"
)

type renderCommand struct {
	synthFlags
	out         string
	duration    time.Duration
	numChannels int
	bitDepth    int
	bitRate     int
	quality     int
}

func (cmd *renderCommand) Name() string {
	return "render"
}

func (cmd *renderCommand) Help() string {
	return "Render patch into wav or mp3 file"
}

func (cmd *renderCommand) Register(fs *flag.FlagSet) {
	cmd.synthFlags.register(fs)
	fs.StringVar(&cmd.out, "out", "", "output wav or mp3 file (required)")
	fs.DurationVar(&cmd.duration, "duration", 10*time.Second, "duration of rendered signal")
	fs.IntVar(&cmd.numChannels, "channels", 2, "number of channels")
	fs.IntVar(&cmd.bitDepth, "bits", 16, "bit depth of wav file")
	fs.IntVar(&cmd.bitRate, "bitrate", 192, "bit rate of mp3 file")
	fs.IntVar(&cmd.quality, "quality", 2, "quality of mp3 encoding, 0 is the best")
}

func (cmd *renderCommand) Run() error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	s, err := cmd.synth()
	if err != nil {
		return err
	}
	numFrames := int(cmd.duration.Seconds() * float64(s.SampleRate()))
	b := s.Render(numFrames, cmd.numChannels)
	if strings.ToLower(filepath.Ext(cmd.out)) == ".mp3" {
		err = mp3.Write(cmd.out, b, s.SampleRate(), cmd.bitRate, cmd.quality)
	} else {
		err = wav.Write(cmd.out, b, s.SampleRate(), signal.BitDepth(cmd.bitDepth))
	}
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %v of %s into %s\n", cmd.duration, cmd.patch, cmd.out)
	if cmd.metric {
		printMetrics()
	}
	return nil
}

func (cmd *renderCommand) Validate() error {
	var message string
	if cmd.out == "" {
		message = message + "Missing -out required flag\n"
	}
	if cmd.duration <= 0 {
		message = message + "Duration must be positive\n"
	}
	if cmd.numChannels <= 0 {
		message = message + "Number of channels must be positive\n"
	}
	if message != "" {
		return errors.New(message)
	}
	return nil
}
