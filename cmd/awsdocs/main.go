package main

import "github.com/isaacphi/awsdocs/internal/ui/cli"

func main() {
	cli.Execute()
}
