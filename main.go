package main

import "github.com/shafe/handcraft/cmd"

func main() {
	cmd.Start()
}
