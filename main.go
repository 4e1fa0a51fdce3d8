package main

import "github.com/mj1618/focus-cli/cmd"

func main() {
	cmd.Execute()
}
