// Package main is the entry point for the testlog2junit CLI.
package main

import "github.com/radiofrance/testlog2junit/cmd"

func main() {
	cmd.Execute()
}
