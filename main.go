package main

import (
	"os"

	"hei-calculator/cli"
)

func main() {
	os.Exit(cli.Execute())
}
