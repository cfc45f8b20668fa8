// Command ricci compiles Ricci-notation index expressions and prints the
// generated code.
package main

import (
	"github.com/contactomorph/tensorism/ricci/cli"
)

func main() {
	cli.Execute()
}
