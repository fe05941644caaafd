package main

import "github.com/moyu-x/desktop-cleaner/cmd"

func main() {
	cmd.Execute()
}
