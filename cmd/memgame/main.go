package main

import "github.com/mcoot/memorygame/internal/cli"

func main() {
	cli.Execute()
}
