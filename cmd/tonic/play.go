package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/log"
	"github.com/dudk/tonic/metric"
	"github.com/dudk/tonic/oto"
	"github.com/dudk/tonic/portaudio"
)

type playCommand struct {
	synthFlags
	device      string
	duration    time.Duration
	bufferSize  int
	numChannels int
	automate    time.Duration
}

func (cmd *playCommand) Name() string {
	return "play"
}

func (cmd *playCommand) Help() string {
	return "Play patch on the default device"
}

func (cmd *playCommand) Register(fs *flag.FlagSet) {
	cmd.synthFlags.register(fs)
	fs.StringVar(&cmd.device, "device", "portaudio", "audio backend: portaudio or oto")
	fs.DurationVar(&cmd.duration, "duration", 0, "stop after duration, play until interrupted if zero")
	fs.IntVar(&cmd.bufferSize, "buffer", 512, "buffer size in frames")
	fs.IntVar(&cmd.numChannels, "channels", 2, "number of channels")
	fs.DurationVar(&cmd.automate, "automate", 0, "set random parameter with this interval, disabled if zero")
}

// device is a started audio backend.
type device interface {
	Stop() error
}

type portaudioDevice struct {
	*portaudio.Stream
}

func (d portaudioDevice) Stop() error {
	if err := d.Stream.Stop(); err != nil {
		return err
	}
	return d.Stream.Close()
}

type otoDevice struct {
	*oto.Player
}

func (d otoDevice) Stop() error {
	return d.Player.Close()
}

func (cmd *playCommand) open(r tonic.Renderer, sampleRate int) (device, error) {
	switch cmd.device {
	case "portaudio":
		s, err := portaudio.Open(r, sampleRate, cmd.bufferSize, cmd.numChannels)
		if err != nil {
			return nil, err
		}
		if err := s.Start(); err != nil {
			s.Close()
			return nil, err
		}
		return portaudioDevice{s}, nil
	case "oto":
		p, err := oto.NewPlayer(r, sampleRate, cmd.numChannels, cmd.bufferSize)
		if err != nil {
			return nil, err
		}
		p.Play()
		return otoDevice{p}, nil
	}
	return nil, fmt.Errorf("unknown device %q", cmd.device)
}

func (cmd *playCommand) Run() error {
	if cmd.numChannels <= 0 || cmd.bufferSize <= 0 {
		return errors.New("number of channels and buffer size must be positive")
	}
	s, err := cmd.synth()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cmd.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := cmd.open(s, s.SampleRate())
		if err != nil {
			return err
		}
		log.GetLogger().Infof("playing %s on %s", cmd.patch, cmd.device)
		<-ctx.Done()
		return d.Stop()
	})
	if cmd.automate > 0 {
		g.Go(func() error {
			return automate(ctx, s, cmd.automate, rand.New(rand.NewSource(cmd.seed)))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if faults := s.Faults(); faults > 0 {
		log.GetLogger().Warnf("%d blocks degraded to silence", faults)
	}
	if cmd.metric {
		printMetrics()
	}
	return nil
}

// automate sets random normalized value of random parameter every
// interval until context is done.
func automate(ctx context.Context, s *tonic.Synth, interval time.Duration, rnd *rand.Rand) error {
	params := s.Parameters()
	if len(params) == 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p := params[rnd.Intn(len(params))]
			if err := s.SetNormalizedParameter(p.Name, rnd.Float64()); err != nil {
				return err
			}
		}
	}
}

func printMetrics() {
	all := metric.GetAll()
	components := make([]string, 0, len(all))
	for c := range all {
		components = append(components, c)
	}
	sort.Strings(components)
	for _, c := range components {
		fmt.Printf("%s:\n", c)
		counters := make([]string, 0, len(all[c]))
		for name := range all[c] {
			counters = append(counters, name)
		}
		sort.Strings(counters)
		for _, name := range counters {
			fmt.Printf("\t%s: %s\n", name, all[c][name])
		}
	}
}
