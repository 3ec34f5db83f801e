package main

import "github.com/username/bigmacindex/src/commands"

func main() {
	commands.Execute()
}
