package main

import (
	"os"

	"github.com/kmindi/fbissueexport/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
