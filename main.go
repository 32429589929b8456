package main

import (
	"os"

	"github.com/admidio-bridge/admidio-bridge/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
