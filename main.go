// Package main is the entry point for nhdbstats, a JSON API over the
// ascended games recorded in a NetHack statistics database.
package main

import (
	"nhdbstats/server/cmd"
)

func main() {
	cmd.Execute()
}
