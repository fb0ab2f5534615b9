package cmd

import (
	"bufio"
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/app"
	"github.com/firefly-engineering/ipkit/internal/config"
	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/input"
	"github.com/firefly-engineering/ipkit/internal/source"
)

// sources builds the command's sources: positional arguments first, then
// --input values. Standard input is used when there are neither.
func sources(args []string) ([]source.Source, error) {
	srcs := make([]source.Source, 0, len(args)+len(inputs))
	for _, arg := range args {
		srcs = append(srcs, source.Arg(arg))
	}
	for _, in := range inputs {
		srcs = append(srcs, source.Parse(in))
	}

	if len(srcs) == 0 {
		return []source.Source{source.Stdin()}, nil
	}
	if source.CountStdin(srcs) > 1 {
		return nil, errors.ValidationError(`multiple "-" file path specified`)
	}
	return srcs, nil
}

// newInput returns a lazy input over the command's sources.
func newInput[T input.Value[T]](cmd *cobra.Command, args []string, parse func(string) (T, error)) (*input.Input[T], error) {
	srcs, err := sources(args)
	if err != nil {
		return nil, err
	}
	return input.New(parse, cmd.InOrStdin(), srcs...), nil
}

// loadConfig loads the configuration named by --config, or the first one
// found on the search path.
func loadConfig() (*config.Configuration, error) {
	return app.Default.LoadConfig(configPath)
}

// output buffers writes to the command's stdout.
type output struct {
	w *bufio.Writer
}

func newOutput(cmd *cobra.Command) *output {
	return &output{w: bufio.NewWriter(cmd.OutOrStdout())}
}

func (o *output) println(v any) {
	fmt.Fprintln(o.w, v)
}

func (o *output) Flush() error {
	if err := o.w.Flush(); err != nil {
		return errors.IOError("failed to write output", err)
	}
	return nil
}

// emit prints every value of in, stopping at the first error.
func emit[T input.Value[T]](out *output, in *input.Input[T], format func(T) string) error {
	for v, err := range in.All() {
		if err != nil {
			return err
		}
		out.println(format(v))
	}
	return nil
}

// groupName lets matched group names go through an Input for sort and
// unique.
type groupName string

func (g groupName) Compare(o groupName) int {
	return cmp.Compare(g, o)
}
