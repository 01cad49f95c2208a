package main

import "github.com/arloliu/fitsio/cmd/fitsio/cmd"

func main() {
	cmd.Execute()
}
