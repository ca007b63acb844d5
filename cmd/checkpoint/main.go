package main

import (
	"github.com/thetatoken/checkpoint/cmd/checkpoint/cmd"
)

func main() {
	cmd.Execute()
}
