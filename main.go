// ./main.go
package main

import (
	"github.com/xkilldash9x/expectlint/cmd"
)

// main is the entry point for the expectlint CLI.
func main() {
	cmd.Execute()
}
