package main

import "github.com/relmetrics/afdmetric/cmd"

func main() {
	cmd.Execute()
}
