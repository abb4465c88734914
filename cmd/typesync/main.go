package main

import "github.com/andrii-bodnar/vibesdk-templates/internal/cli"

func main() {
	cli.Execute()
}
