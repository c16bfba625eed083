package main

import "github.com/clipforge/clipforge/cmd"

// Version is set via ldflags during build
var version = "0.1.0-dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
