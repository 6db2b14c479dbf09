package main

import "github.com/mwinters-dev/chatstate/cmd"

func main() {
	cmd.Execute()
}
