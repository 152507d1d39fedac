package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sculpt/internal/ast"
	"sculpt/internal/config"
)

var (
	inspectOffset      int
	inspectDiagnostics bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Parse a TypeScript file and print its node outline",
	Long: `Parses the given file and prints the named-node outline with byte
ranges. With --offset the node path under that byte offset is printed
instead; with --diagnostics only the parse errors are.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectOffset, "offset", -1, "print the node path at this byte offset")
	inspectCmd.Flags().BoolVar(&inspectDiagnostics, "diagnostics", false, "print parse diagnostics only")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	ctx := ast.NewContext(cfg.Format())
	defer ctx.Close()
	file, err := ctx.CreateSourceFile(args[0], string(content))
	if err != nil {
		return err
	}

	switch {
	case inspectDiagnostics:
		for _, d := range file.Diagnostics() {
			fmt.Printf("%s:[%d,%d) %s\n", file.Path(), d.Start, d.End, d.Message)
		}
		if !file.HasParseErrors() {
			fmt.Println("no diagnostics")
		}
		return nil
	case inspectOffset >= 0:
		return printNodePath(file, inspectOffset)
	default:
		return printOutline(file.AsNode(), 0)
	}
}

// printOutline prints the named-node tree, one node per line, indented by
// depth.
func printOutline(n *ast.Node, depth int) error {
	named, err := n.Named()
	if err != nil {
		return err
	}
	if named {
		start, err := n.Start()
		if err != nil {
			return err
		}
		end, err := n.End()
		if err != nil {
			return err
		}
		fmt.Printf("%s%s [%d,%d)\n", strings.Repeat("  ", depth), n.Kind(), start, end)
		depth++
	}
	children, err := n.Children()
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := printOutline(c, depth); err != nil {
			return err
		}
	}
	return nil
}

// printNodePath prints the chain of nodes containing the offset, outermost
// first.
func printNodePath(file *ast.SourceFile, offset int) error {
	cur := file.AsNode()
	for cur != nil {
		start, err := cur.Start()
		if err != nil {
			return err
		}
		end, err := cur.End()
		if err != nil {
			return err
		}
		fmt.Printf("%s [%d,%d)\n", cur.Kind(), start, end)
		next, err := cur.ChildAtPos(offset)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}
