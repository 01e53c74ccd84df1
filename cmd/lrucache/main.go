package main

import "go.dw1.io/lrucache/internal/cli"

func main() {
	cli.Execute()
}
