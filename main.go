// Package main is the entry point for the shelve CLI.
package main

import "shelve.dev/pkg/shelve/cmd"

func main() {
	cmd.Execute()
}
