package main

import (
	"context"
	"os"

	"recwatch/internal/cli"
	"recwatch/internal/presenter"
)

func main() {
	deps := &cli.Dependencies{}
	if err := cli.NewRootCmd(deps).ExecuteContext(context.Background()); err != nil {
		presenter.NewTerminal(os.Stderr, nil).Error(err.Error())
		os.Exit(1)
	}
}
