package main

import (
	"flag"
	"fmt"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/log"
	"github.com/dudk/tonic/patch"
)

type listCommand struct{}

func (cmd *listCommand) Name() string {
	return "list"
}

func (cmd *listCommand) Help() string {
	return "Show the list of available patches and their parameters"
}

func (cmd *listCommand) Register(fs *flag.FlagSet) {}

func (cmd *listCommand) Run() error {
	for _, p := range patch.All() {
		s := tonic.NewSynth(tonic.WithLogger(log.Silent()))
		if err := p.Build(s, patch.Options{}); err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", p.Name, p.Description)
		for _, info := range s.Parameters() {
			fmt.Printf("\t%s = %v [%v, %v]\n", info.Name, info.Value, info.Min, info.Max)
		}
	}
	return nil
}
