package main

import "benda/cmd"

func main() {
	cmd.Execute()
}
