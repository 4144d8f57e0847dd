package main

import "github.com/labsx402/paradoxd/internal/cli"

func main() {
	cli.Execute()
}
