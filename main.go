package main

import "github.com/vienton/cs344-smallsh/cmd"

func main() {
	cmd.Execute()
}
