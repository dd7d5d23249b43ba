// This is the main-driver for our compiler.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/hendersonlang/rexc/ast"
	"github.com/hendersonlang/rexc/compiler"
	"github.com/hendersonlang/rexc/instructions"
)

func main() {
	app := cli.NewApp()
	app.Name = "rexc"
	app.Usage = "Compile a regular expression to hendersonvm bytecode."
	app.Version = "1.0.0"
	app.ArgsUsage = "'regex'"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "json, j",
			Usage: "emit the program as a JSON array of [CMDNAME, arg1, arg2] triples",
		},
		cli.StringFlag{
			Name:  "dot, d",
			Usage: "also write the AST as a directed-graph document to PATH",
		},
		cli.StringFlag{
			Name:  "pdf, p",
			Usage: "additionally render the AST as a PDF at PATH, via `dot`",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "raise the log level",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("expected exactly one regex argument", 1)
	}
	regex := c.Args().First()

	opts := compiler.Options{
		Debug:     c.Bool("verbose"),
		FullGraph: c.String("dot") != "" || c.String("pdf") != "",
	}

	root, program, err := compiler.CompileWithAST(regex, opts)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("error compiling %q: %s", regex, err), 1)
	}

	if dotPath := c.String("dot"); dotPath != "" {
		if err := writeDiagram(root, dotPath); err != nil {
			glog.Warningf("failed to write diagram to %s: %s", dotPath, err)
		}
	}
	if pdfPath := c.String("pdf"); pdfPath != "" {
		if err := renderPDF(root, pdfPath); err != nil {
			glog.Warningf("failed to render PDF to %s: %s", pdfPath, err)
		}
	}

	if c.Bool("json") {
		fmt.Println(marshalJSON(program))
		return nil
	}

	fmt.Print(instructions.PrettyPrint(program))
	return nil
}

// writeDiagram renders root as a dot document to a new file at path.
func writeDiagram(root *ast.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return compiler.RenderAST(root, f, "AST")
}

// marshalJSON renders a compiled program as the `-j/--json` wire shape.
func marshalJSON(program []instructions.Triple) string {
	b, err := json.Marshal(instructions.SerializeJSON(program))
	if err != nil {
		glog.Errorf("failed to marshal program to JSON: %s", err)
		return "[]"
	}
	return string(b)
}

// renderPDF writes root as a dot document to an in-memory buffer, then
// shells out to `dot` to lay it out as a PDF at path - the same "pipe our
// output to an external tool's stdin" shape the original driver uses to
// hand its generated assembly to gcc.
func renderPDF(root *ast.Node, path string) error {
	var buf bytes.Buffer
	if err := compiler.RenderAST(root, &buf, "AST"); err != nil {
		return err
	}

	dot := exec.Command("dot", "-Tpdf", "-o", path)
	dot.Stdin = &buf
	dot.Stderr = os.Stderr
	return dot.Run()
}
