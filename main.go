package main

import "github.com/rahul-khatri/clipmark/cmd"

func main() {
	cmd.Execute()
}
