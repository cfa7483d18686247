package main

import "thumbdisasm/internal/cli"

func main() {
	cli.Execute()
}
