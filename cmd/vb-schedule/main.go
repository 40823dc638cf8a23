package main

import (
	"os"
	_ "time/tzdata"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
