// Package main is the entry point for the covfold CLI.
package main

import "github.com/mouse-blink/covfold/cmd"

func main() {
	cmd.Execute()
}
