package main

import (
	"github.com/bibkit/ilsmigrate/cmd"
)

func main() {
	cmd.Execute()
}
