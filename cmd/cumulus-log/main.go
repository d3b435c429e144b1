package main

import (
	"github.com/cumulus-pipeline/cumulus-logging/pkg/cli"
)

func main() {
	cli.Execute()
}
