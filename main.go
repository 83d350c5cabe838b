/*
Command politimeline renders political-timeline charts: one horizontal bar
panel per scenario showing which party bloc held the head of state and head
of government offices over time, shaded by periods of political alignment
and misalignment.

Usage:

	politimeline render [--data scenarios.yaml] [--config style.yaml] [--output timeline.svg] [--png]
	politimeline complement 2001.10-2005.10 2003.01-2007.11 --window-start 2000.01 --window-end 2010.01
	politimeline summary
	politimeline validate

Without --data the bundled dataset is used; without --config the default
style is used. Every flag can also be set through a POLITIMELINE_<FLAG>
environment variable.
*/
package main

import (
	"os"

	"politimeline/internal/cli"
	"politimeline/internal/log"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Error("politimeline failed", err)
		os.Exit(1)
	}
}
