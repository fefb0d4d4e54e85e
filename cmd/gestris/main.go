package main

import "github.com/gesturelabs/gestris/internal/cli"

func main() {
	cli.Execute()
}
