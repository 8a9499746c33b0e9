package main

import "github.com/ramalho/lispy/cmd"

func main() {
	cmd.Execute()
}
