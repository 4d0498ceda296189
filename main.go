// emoji-life runs Conway's Game of Life on a small entity component system.
//
//	go build -o life .
//	./life run --pattern pulsar
//	./life serve --port 2222
package main

import (
	"os"

	"emoji-life/internal/cli"
)

func main() {
	cli.Execute(os.Args[1:])
}
