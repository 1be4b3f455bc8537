package main

import "github.com/stockd/stockd/internal/cli"

func main() {
	cli.Execute()
}
