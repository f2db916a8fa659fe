package main

import "github.com/avelkov/focusboard/internal/cli"

func main() {
	cli.Execute()
}
