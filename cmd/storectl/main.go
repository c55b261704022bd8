package main

import "github.com/shopkit/storefront-go/internal/cli"

func main() {
	cli.Execute()
}
