package main

import "github.com/valivia/image-converter/cmd"

func main() {
	cmd.Execute()
}
