package main

import (
	"os"

	"github.com/terraincognita07/fitnutri/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
