// Command solver-cli runs the solving pipeline offline: no Telegram, no
// database, no model calls. Handy for checking what the local
// strategies make of a problem sheet.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mathbot/api/internal/solver"
)

var (
	inputFile string
	asJSON    bool
)

// readProblem gathers the problem text: -f file first, then the argument
// list, then piped stdin.
func readProblem(args []string) (string, error) {
	if inputFile != "" {
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", errors.New("no problem text: pass it as arguments, with -f, or on stdin")
	}
	return text, nil
}

func main() {
	root := &cobra.Command{
		Use:          "solver-cli",
		Short:        "Classify and solve math problems from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "read the problem text from a file")

	solveCmd := &cobra.Command{
		Use:   "solve [text]",
		Short: "Solve every problem in the text and print the answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readProblem(args)
			if err != nil {
				return err
			}
			sols := solver.Solve(context.Background(), text)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sols)
			}
			for _, s := range sols {
				fmt.Printf("%d. %s\n", s.Number, s.Answer)
				if s.Err != "" {
					fmt.Printf("   (%s)\n", s.Err)
				}
			}
			return nil
		},
	}
	solveCmd.Flags().BoolVar(&asJSON, "json", false, "print full solution records as JSON")

	classifyCmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Print the topic category of a problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readProblem(args)
			if err != nil {
				return err
			}
			fmt.Println(solver.Classify(text))
			return nil
		},
	}

	reportCmd := &cobra.Command{
		Use:   "report [text]",
		Short: "Solve and print the full Markdown report with steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readProblem(args)
			if err != nil {
				return err
			}
			fmt.Print(solver.RenderMarkdown(solver.Solve(context.Background(), text)))
			return nil
		},
	}

	root.AddCommand(solveCmd)
	root.AddCommand(classifyCmd)
	root.AddCommand(reportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
