package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

var Version string

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	setupLogging()
	cli := &Cli{out: os.Stdout}
	os.Exit(cli.Execute(os.Args[1:]))
}
