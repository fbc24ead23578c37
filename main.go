package main

import "github.com/sarchlab/memlat/cmd"

func main() {
	cmd.Execute()
}
