package main

import "config-compare/cmd"

func main() {
	cmd.Execute()
}
