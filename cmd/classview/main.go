package main

import "classview/cli"

func main() {
	cli.Execute()
}
