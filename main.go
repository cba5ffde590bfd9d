package main

import (
	"context"
	"os"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
