// life-server shares one board with SSH viewers. It is the same as
// `life serve` and accepts the same flags. Build:
//
//	go build -o life-server ./cmd/server
//
// Connect from any number of terminals:
//
//	ssh -t -p 2222 localhost
package main

import (
	"os"

	"emoji-life/internal/cli"
)

func main() {
	cli.Execute(append([]string{"serve"}, os.Args[1:]...))
}
