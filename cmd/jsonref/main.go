// Command jsonref dereferences $ref pointers in JSON and YAML documents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/erraggy/jsonref"
	"github.com/erraggy/jsonref/internal/fileutil"
	"github.com/erraggy/jsonref/internal/mcpserver"
	"github.com/erraggy/jsonref/resolver"
	"gopkg.in/yaml.v3"
)

// Output format constants
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// stdinPath is the special argument used to indicate reading from stdin.
const stdinPath = "-"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("jsonref v%s\n", jsonref.Version())
	case "help", "-h", "--help":
		printUsage()
	case "resolve":
		if err := handleResolve(os.Args[2:]); err != nil {
			printError(err)
			os.Exit(1)
		}
	case "refs":
		if err := handleRefs(os.Args[2:]); err != nil {
			printError(err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			printError(err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// resolveFlags contains flags for the resolve command
type resolveFlags struct {
	refKey string
	format string
	output string
}

func setupResolveFlags() (*flag.FlagSet, *resolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &resolveFlags{}

	fs.StringVar(&flags.refKey, "ref-key", "", "keep each original $ref value under this key in the substituted node")
	fs.StringVar(&flags.format, "format", formatJSON, "output format (json or yaml)")
	fs.StringVar(&flags.output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: stdout)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: jsonref resolve [flags] <file|url|->\n\n")
		_, _ = fmt.Fprintf(output, "Dereference all $ref pointers in a JSON or YAML document.\n")
		_, _ = fmt.Fprintf(output, "Pass '-' to read the document from stdin.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  jsonref resolve schema.json\n")
		_, _ = fmt.Fprintf(output, "  jsonref resolve -format yaml schema.yaml\n")
		_, _ = fmt.Fprintf(output, "  jsonref resolve -ref-key __reference__ https://example.com/schema.json\n")
		_, _ = fmt.Fprintf(output, "  cat schema.json | jsonref resolve -o resolved.json -\n")
	}

	return fs, flags
}

func handleResolve(args []string) error {
	fs, flags := setupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resolve command requires exactly one file path, URL, or '-'")
	}
	if err := validateOutputFormat(flags.format); err != nil {
		fs.Usage()
		return err
	}

	var opts []resolver.Option
	if flags.refKey != "" {
		opts = append(opts, resolver.WithReferenceKey(flags.refKey))
	}
	r, err := resolver.New(opts...)
	if err != nil {
		return err
	}

	resolved, err := resolveInput(r, fs.Arg(0))
	if err != nil {
		return err
	}

	data, err := marshalDocument(resolved, flags.format)
	if err != nil {
		return fmt.Errorf("marshaling resolved document: %w", err)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

// refsFlags contains flags for the refs command
type refsFlags struct {
	format string
}

func setupRefsFlags() (*flag.FlagSet, *refsFlags) {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	flags := &refsFlags{}

	fs.StringVar(&flags.format, "format", formatJSON, "output format (json or yaml)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: jsonref refs [flags] <file|url|->\n\n")
		_, _ = fmt.Fprintf(output, "List every $ref occurrence in a document without resolving anything.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  jsonref refs schema.json\n")
		_, _ = fmt.Fprintf(output, "  jsonref refs -format yaml https://example.com/schema.json\n")
	}

	return fs, flags
}

func handleRefs(args []string) error {
	fs, flags := setupRefsFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("refs command requires exactly one file path, URL, or '-'")
	}
	if err := validateOutputFormat(flags.format); err != nil {
		fs.Usage()
		return err
	}

	doc, err := loadInput(fs.Arg(0))
	if err != nil {
		return err
	}

	data, err := marshalDocument(resolver.CollectRefs(doc), flags.format)
	if err != nil {
		return fmt.Errorf("marshaling references: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// resolveInput dereferences the document named by arg: a file path, an
// http(s) URL, or '-' for stdin.
func resolveInput(r *resolver.Resolver, arg string) (any, error) {
	switch {
	case arg == stdinPath:
		doc, err := readStdin()
		if err != nil {
			return nil, err
		}
		return r.Resolve(doc)
	case isURL(arg):
		return r.ResolveURL(arg)
	default:
		return r.ResolveFile(arg)
	}
}

// loadInput reads the document named by arg without resolving anything.
func loadInput(arg string) (any, error) {
	switch {
	case arg == stdinPath:
		return readStdin()
	case isURL(arg):
		return resolver.LoadURL(arg)
	default:
		return resolver.LoadFile(arg)
	}
}

func readStdin() (any, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return resolver.LoadBytes(data)
}

func validateOutputFormat(format string) error {
	if format != formatJSON && format != formatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, formatJSON, formatYAML)
	}
	return nil
}

// marshalDocument marshals a document to bytes in the specified format.
func marshalDocument(doc any, format string) ([]byte, error) {
	if format == formatYAML {
		return yaml.Marshal(doc)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func printUsage() {
	fmt.Println(`jsonref - JSON Reference resolver

Usage:
  jsonref <command> [options]

Commands:
  resolve     Dereference all $ref pointers in a document
  refs        List $ref occurrences without resolving
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  jsonref resolve schema.json
  jsonref resolve -ref-key __reference__ -o resolved.json schema.yaml
  jsonref resolve https://example.com/schema.json
  jsonref refs schema.json
  cat schema.json | jsonref resolve -

Run 'jsonref <command> --help' for more information on a command.`)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
