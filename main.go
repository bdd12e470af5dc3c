// main.go
//
// Minimal entry point that delegates CLI handling to the Cobra root command in cmd/root.go

package main

import (
	"github.com/e1tester2019/JoshWellControl-MacOS-sub007/cmd"
)

func main() {
	cmd.Execute()
}
