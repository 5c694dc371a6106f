package main

import (
	"fmt"
	"os"

	"github.com/corpeningc/idiff/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "idiff:", err)
		os.Exit(1)
	}
}
