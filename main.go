package main

import (
	"github.com/yaoapp/lisa/cmd"
)

// main program
func main() {
	cmd.Execute()
}
