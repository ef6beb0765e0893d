package main

import "github.com/ncg777/musicbox2/cmd"

func main() {
	cmd.Execute()
}
