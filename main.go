package main

import "github.com/clipzo/clipzo/cmd"

func main() {
	cmd.Execute()
}
