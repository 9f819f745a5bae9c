package main

import "github.com/oceanmodels/goocean/cmd"

func main() {
	cmd.Execute()
}
