package main

import "github.com/example/traillend-client/cmd"

func main() {
	cmd.Execute()
}
