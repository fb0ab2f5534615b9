package cmd

import (
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/input"
	"github.com/firefly-engineering/ipkit/internal/network"
)

var hostsAll bool

var hostsCmd = &cobra.Command{
	Use:   "hosts [networks...]",
	Short: "List the host addresses of networks",
	Long: `Enumerates the host addresses of each network. IPv4 networks wider than
/31 skip their network and broadcast addresses unless --all is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: runHosts,
}

func init() {
	hostsCmd.Flags().BoolVarP(&hostsAll, "all", "a", false, "Include network and broadcast addresses")
	rootCmd.AddCommand(hostsCmd)
}

func runHosts(cmd *cobra.Command, args []string) error {
	in, err := newInput(cmd, args, network.ParseNet)
	if err != nil {
		return err
	}

	out := newOutput(cmd)
	defer out.Flush()

	collect := sortValues || uniqueValues
	var hosts []netip.Addr

	for n, err := range in.All() {
		if err != nil {
			return err
		}
		for addr := range network.Hosts(n.Prefix, hostsAll) {
			if collect {
				hosts = append(hosts, addr)
			} else {
				out.println(addr)
			}
		}
	}

	if collect {
		results := input.FromValues(hosts)
		if err := results.Apply(sortValues, uniqueValues); err != nil {
			return err
		}
		if err := emit(out, results, netip.Addr.String); err != nil {
			return err
		}
	}
	return out.Flush()
}
