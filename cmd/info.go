package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/info"
	"github.com/firefly-engineering/ipkit/internal/network"
)

var (
	infoNoPadding bool
	infoFormat    string
)

var infoCmd = &cobra.Command{
	Use:   "info [values...]",
	Short: "Describe addresses and networks",
	Long: `Prints the network, host range, masks and binary forms of each value.
A bare address is treated as a single-address network. Records are
separated by a blank line.

--format replaces each record with a template. Available fields:
  {{address}} {{network}} {{hosts_range}} {{broadcast}} {{hosts}}
  {{usable_hosts}} {{netmask}} {{hostmask}} {{prefix}} {{full}}
  {{binary_address}} {{binary_netmask}} {{ipv6_mapping}}`,
	Args: cobra.ArbitraryArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoNoPadding, "no-padding", false, "Do not align values in a column")
	infoCmd.Flags().StringVar(&infoFormat, "format", "", "Print each record with a {{field}} template")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	formatter, err := info.NewFormatter(info.Options{
		Padding: !infoNoPadding,
		Format:  infoFormat,
	})
	if err != nil {
		return err
	}

	in, err := newInput(cmd, args, network.ParseAutoNet)
	if err != nil {
		return err
	}
	if err := in.Apply(sortValues, uniqueValues); err != nil {
		return err
	}

	out := newOutput(cmd)
	defer out.Flush()

	first := true
	for n, err := range in.All() {
		if err != nil {
			return err
		}
		record, err := formatter.Format(n.Prefix)
		if err != nil {
			return err
		}
		if !first && infoFormat == "" {
			out.println("")
		}
		first = false
		out.println(record)
	}
	return out.Flush()
}
