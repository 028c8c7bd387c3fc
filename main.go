package main

import (
	"github.com/codesync/codesync/cmd"
	"github.com/codesync/codesync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
