package main

import "github.com/bisegni/lcdio/cmd"

func main() {
	cmd.Execute()
}
