package main

import "booktracker/cmd"

func main() {
	cmd.Execute()
}
