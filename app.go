package main

import "github.com/recuperacredito/recupera-go/cmd"

func main() {
	cmd.Run()
}
