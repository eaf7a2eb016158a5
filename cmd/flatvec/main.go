package main

import "github.com/rawbytedev/flatvec/cmd/flatvec/cmd"

func main() {
	cmd.Execute()
}
