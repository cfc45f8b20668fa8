// Package cli implements the ricci command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"

	"github.com/contactomorph/tensorism"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ricci [expression]",
	Short: "Compile Ricci-notation index expressions",
	Long: `ricci compiles index expressions written in Ricci notation, e.g.

    i j $ a[i,j] + b[j]

and prints the generated code: a header of dimension bindings and
consistency checks, followed by an array construction or a lowered
expression body. The expression is taken from the command line, or from
standard input when no argument is given.
`,
	RunE: runRicciCmd,
}

// Execute runs the root command. This is called exactly once by main().
func Execute() {
	if rootCmd.Execute() != nil {
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which are global for the application
	rootCmd.PersistentFlags().BoolP("flat", "f", false, "Print the code flattened to a single line")
	rootCmd.PersistentFlags().String("logfile", "stderr", "URL of log output location")
}

func runRicciCmd(cmd *cobra.Command, args []string) error {
	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		input = strings.TrimSpace(string(data))
	}
	tracing.Infof("ricci compiler called")
	flat, _ := cmd.Flags().GetBool("flat")
	if flat {
		text, err := tensorism.Format(input)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}
	code, err := tensorism.Compile(input)
	if err != nil {
		return err
	}
	fmt.Print(code.String())
	return nil
}
