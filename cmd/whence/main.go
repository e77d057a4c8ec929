// Package main is the entry point for the whence CLI.
package main

import "github.com/whence-cli/whence/internal/cli"

func main() {
	cli.Execute()
}
