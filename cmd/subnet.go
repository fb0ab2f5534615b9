package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/input"
	"github.com/firefly-engineering/ipkit/internal/network"
)

var (
	subnetPrefixLen int
	subnetCIDR      bool
)

var subnetCmd = &cobra.Command{
	Use:   "subnet [networks...]",
	Short: "Split networks into subnets",
	Long: `Enumerates, in ascending order, the subnets of each network at the given
prefix length. The prefix length cannot be shorter than the network's own.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSubnet,
}

func init() {
	subnetCmd.Flags().IntVarP(&subnetPrefixLen, "prefix-len", "p", 0, "Prefix length of the subnets")
	subnetCmd.Flags().BoolVarP(&subnetCIDR, "cidr", "C", false, "Print subnets in CIDR form")
	_ = subnetCmd.MarkFlagRequired("prefix-len")
	rootCmd.AddCommand(subnetCmd)
}

func runSubnet(cmd *cobra.Command, args []string) error {
	in, err := newInput(cmd, args, network.ParseNet)
	if err != nil {
		return err
	}

	out := newOutput(cmd)
	defer out.Flush()

	format := func(n network.Net) string {
		if subnetCIDR {
			return n.String()
		}
		return n.Addr().String()
	}

	collect := sortValues || uniqueValues
	var subnets []network.Net

	for n, err := range in.All() {
		if err != nil {
			return err
		}
		seq, err := network.Subnets(n.Prefix, subnetPrefixLen)
		if err != nil {
			return err
		}
		for p := range seq {
			if collect {
				subnets = append(subnets, network.Net{Prefix: p})
			} else {
				out.println(format(network.Net{Prefix: p}))
			}
		}
	}

	if collect {
		results := input.FromValues(subnets)
		if err := results.Apply(sortValues, uniqueValues); err != nil {
			return err
		}
		if err := emit(out, results, format); err != nil {
			return err
		}
	}
	return out.Flush()
}
