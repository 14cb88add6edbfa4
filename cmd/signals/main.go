package main

import "github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/cli"

func main() {
	cli.Execute()
}
