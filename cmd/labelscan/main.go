package main

import (
	"fmt"
	"os"

	"github.com/MeKo-Tech/labelscan/cmd/labelscan/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", r)
			os.Exit(1)
		}
	}()
	cmd.Execute()
}
