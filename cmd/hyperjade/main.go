// hyperjade compiles a parsed template node tree (JSON interchange format)
// into a JavaScript render function for virtual-dom diff rendering.
package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dop251/goja"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/cobra"

	"github.com/hyperjade/hyperjade/pkg/hyperjade"
)

var (
	outPath             string
	pretty              bool
	withRuntime         bool
	marshalDataset      bool
	capitalConstructors bool
	check               bool
)

var rootCmd = &cobra.Command{
	Use:   "hyperjade [tree.json]",
	Short: "Compile a parsed template tree into a virtual-DOM render function",
	Long: `hyperjade reads a template node tree (the JSON interchange format
emitted by the template-syntax parser) from a file or stdin and writes a
self-contained JavaScript source unit whose exported render(locals)
function builds a virtual-DOM tree through hyperscript calls.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to file instead of stdout")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "beautify the generated source")
	rootCmd.Flags().BoolVar(&withRuntime, "runtime", true, "prepend the virtual-dom binding boilerplate")
	rootCmd.Flags().BoolVar(&marshalDataset, "marshal-dataset", true, "rewrite data-* attributes into dataset properties")
	rootCmd.Flags().BoolVar(&capitalConstructors, "capital-constructors", false, "treat capitalized tag names as constructor references")
	rootCmd.Flags().BoolVar(&check, "check", false, "parse the generated source before writing it")
}

func run(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "open tree")
		}
		defer f.Close()
		in = f
	}

	tree, err := hyperjade.DecodeTree(in)
	if err != nil {
		return err
	}

	opts := hyperjade.DefaultOptions()
	opts.Pretty = pretty
	opts.Runtime = withRuntime
	opts.MarshalDataset = marshalDataset
	opts.CapitalConstructors = capitalConstructors
	if pretty {
		opts.Formatter = beautify
	}

	src, err := hyperjade.Compile(tree, opts)
	if err != nil {
		return err
	}

	if check {
		if err := checkSource(src); err != nil {
			return err
		}
	}

	if outPath != "" {
		return errors.Wrap(os.WriteFile(outPath, []byte(src), 0o644), "write output")
	}
	_, err = io.WriteString(cmd.OutOrStdout(), src)
	return err
}

// beautify is the formatting collaborator injected behind --pretty. The
// compiler's own output is already valid; this only normalizes layout.
func beautify(src string) (string, error) {
	result := api.Transform(src, api.TransformOptions{})
	if len(result.Errors) > 0 {
		return "", errors.Newf("beautify: %s", result.Errors[0].Text)
	}
	return string(result.Code), nil
}

// checkSource parses the generated unit so a malformed embedded fragment
// surfaces here rather than in the downstream bundler. Fragments are
// trusted input; this runs only on request.
func checkSource(src string) error {
	if _, err := goja.Compile("generated.js", src, false); err != nil {
		return errors.Wrap(err, "generated source failed to parse")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
