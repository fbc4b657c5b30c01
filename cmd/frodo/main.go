package main

import "github.com/abojja9/sleep-better-ai/internal/cmd"

func main() {
	cmd.Execute()
}
