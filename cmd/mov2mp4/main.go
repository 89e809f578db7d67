package main

import "github.com/devbush/mov2mp4/internal/adapters/cli"

func main() {
	cli.Execute()
}
