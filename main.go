package main

import (
	"github.com/kundajelab/simdna/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
