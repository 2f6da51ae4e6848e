package main

import (
	"os"

	"github.com/betterleaks/regexgrep/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
