package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/classify"
	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/input"
	"github.com/firefly-engineering/ipkit/internal/network"
)

var groupExitNoMatch bool

var groupCmd = &cobra.Command{
	Use:   "group [values...]",
	Short: "Print the group each value belongs to",
	Long: `Prints the name of the first configured group containing each address
or network. Values outside every group print nothing, or abort the
command with --exit-no-match.`,
	Args: cobra.ArbitraryArgs,
	RunE: runGroup,
}

func init() {
	groupCmd.Flags().BoolVar(&groupExitNoMatch, "exit-no-match", false, "Fail when a value matches no group")
	rootCmd.AddCommand(groupCmd)
}

func runGroup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in, err := newInput(cmd, args, network.ParseAddrOrNet)
	if err != nil {
		return err
	}

	out := newOutput(cmd)
	defer out.Flush()

	collect := sortValues || uniqueValues
	var names []groupName

	for v, err := range in.All() {
		if err != nil {
			return err
		}
		name, found, err := classify.First(cmd.Context(), v, cfg)
		if err != nil {
			return err
		}
		if !found {
			if groupExitNoMatch {
				return errors.NoGroupFound(v.String())
			}
			continue
		}
		if collect {
			names = append(names, groupName(name))
		} else {
			out.println(name)
		}
	}

	if collect {
		results := input.FromValues(names)
		if err := results.Apply(sortValues, uniqueValues); err != nil {
			return err
		}
		if err := emit(out, results, func(g groupName) string { return string(g) }); err != nil {
			return err
		}
	}
	return out.Flush()
}
