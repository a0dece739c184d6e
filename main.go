// Package main is the entry point for the kinocast application.
package main

import (
	"github.com/samber/lo"

	"github.com/kinocast-cli/kinocast/cmd"
	"github.com/kinocast-cli/kinocast/config"
	"github.com/kinocast-cli/kinocast/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
