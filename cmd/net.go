package cmd

import (
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/input"
	"github.com/firefly-engineering/ipkit/internal/network"
)

var (
	netPrefixLen int
	netCIDR      bool
)

var netCmd = &cobra.Command{
	Use:   "net [addresses...]",
	Short: "Truncate addresses to their network",
	Long: `Prints the network address of each address at the given prefix
length, or the network itself with --cidr.`,
	Args: cobra.ArbitraryArgs,
	RunE: runNet,
}

func init() {
	netCmd.Flags().IntVarP(&netPrefixLen, "prefix-len", "p", 0, "Prefix length of the network")
	netCmd.Flags().BoolVarP(&netCIDR, "cidr", "C", false, "Print networks in CIDR form")
	_ = netCmd.MarkFlagRequired("prefix-len")
	rootCmd.AddCommand(netCmd)
}

func runNet(cmd *cobra.Command, args []string) error {
	in, err := newInput(cmd, args, network.ParseAddr)
	if err != nil {
		return err
	}

	out := newOutput(cmd)
	defer out.Flush()

	format := func(n network.Net) string {
		if netCIDR {
			return n.String()
		}
		return n.Addr().String()
	}

	if !sortValues && !uniqueValues {
		for addr, err := range in.All() {
			if err != nil {
				return err
			}
			n, err := truncate(addr)
			if err != nil {
				return err
			}
			out.println(format(n))
		}
		return out.Flush()
	}

	var nets []network.Net
	for addr, err := range in.All() {
		if err != nil {
			return err
		}
		n, err := truncate(addr)
		if err != nil {
			return err
		}
		nets = append(nets, n)
	}

	results := input.FromValues(nets)
	if err := results.Apply(sortValues, uniqueValues); err != nil {
		return err
	}
	if err := emit(out, results, format); err != nil {
		return err
	}
	return out.Flush()
}

func truncate(addr netip.Addr) (network.Net, error) {
	p, err := network.Truncate(addr, netPrefixLen)
	if err != nil {
		return network.Net{}, err
	}
	return network.Net{Prefix: p}, nil
}
