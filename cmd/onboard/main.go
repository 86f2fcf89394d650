package main

import "github.com/xvierd/git-onboard/cmd"

func main() {
	cmd.Execute()
}
