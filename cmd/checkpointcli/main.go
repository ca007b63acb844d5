package main

import (
	"github.com/thetatoken/checkpoint/cmd/checkpointcli/cmd"
)

func main() {
	cmd.Execute()
}
