package main

import (
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/mobile-directing-system/mds-store/cmd"
)

type options struct {
	Migrate cmd.MigrateCommand `command:"migrate" description:"Manage database migrations"`
	Seed    cmd.SeedCommand    `command:"seed" description:"Bootstrap the database with an admin account"`
	Monitor cmd.MonitorCommand `command:"monitor" description:"Probe the store and ship latency statistics to StatsD"`
}

func main() {
	parserOpts := &options{}
	parser := flags.NewParser(parserOpts, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		os.Exit(1)
	}
}
