// Package main es el CLI de administración de chapitas (tagctl).
package main

import (
	"os"

	"pet-qr-tracker/cmd/tagctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
