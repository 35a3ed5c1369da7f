package main

import "github.com/tuanngo/material-management/cmd"

func main() {
	cmd.Execute()
}
