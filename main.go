// Package main is the entry point for the playoffsim CLI tool.
package main

import "github.com/region-odds/playoffsim/cmd"

func main() {
	cmd.Execute()
}
