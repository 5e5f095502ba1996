package main

import "github.com/llehouerou/handoff/cmd"

func main() {
	cmd.Execute()
}
