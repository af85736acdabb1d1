package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/pthm/lineclass/internal/cmd"
	"github.com/pthm/lineclass/internal/version"
)

func main() {
	err := fang.Execute(context.Background(), cmd.RootCmd,
		fang.WithVersion(version.Version),
		fang.WithCommit(version.Commit),
	)
	if err != nil {
		os.Exit(1)
	}
}
