package main

import "github.com/ngld/daedalus/cmd"

func main() {
	cmd.Execute()
}
