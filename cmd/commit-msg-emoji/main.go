package main

import (
	"fmt"
	"os"

	app "github.com/breml/commit-msg-emoji/internal/hooks/commitmsg"
)

func main() {
	err := app.Run(os.Args, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
