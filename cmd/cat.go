package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/network"
)

var catCmd = &cobra.Command{
	Use:   "cat [values...]",
	Short: "Validate and print addresses and networks",
	Long: `Parses every value as an address or a CIDR network and prints it back
in canonical form. With --sort, addresses come before networks.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	in, err := newInput(cmd, args, network.ParseAddrOrNet)
	if err != nil {
		return err
	}
	if err := in.Apply(sortValues, uniqueValues); err != nil {
		return err
	}

	out := newOutput(cmd)
	defer out.Flush()

	if err := emit(out, in, network.AddrOrNet.String); err != nil {
		return err
	}
	return out.Flush()
}
