package main

import (
	"github.com/tacogips/scaffold/internal/cli"
)

func main() {
	cli.Execute()
}
