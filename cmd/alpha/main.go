package main

import (
	"github.com/alphadiscovery/alpha/internal/ui/cli"
)

func main() {
	cli.Execute()
}
