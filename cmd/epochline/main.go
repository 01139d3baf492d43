package main

import "github.com/livp123/epochline/cmd/epochline/commands"

func main() {
	commands.Execute()
}
