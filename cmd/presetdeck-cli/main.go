package main

import "presetdeck/cmd/presetdeck-cli/cmd"

func main() {
	cmd.Execute()
}
