package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/ipkit/internal/config"
	"github.com/firefly-engineering/ipkit/internal/network"
	"github.com/firefly-engineering/ipkit/internal/query"
)

var filterQuery string

var filterCmd = &cobra.Command{
	Use:   "filter --query EXPR [values...]",
	Short: "Print values matching an expression",
	Long: `Evaluates a boolean expression against each address or network and
prints the values for which it holds.

Placeholders:
  ip_version  4 or 6
  type        "addr" or "net"
  prefix      prefix length (32 or 128 for a bare address)
  group       first matching group name, "" if none
  groups      list of matching group names
  hosts       number of addresses covered

Examples:
  ipkit filter -q 'ip_version == 4 && prefix <= 24'
  ipkit filter -q '"internal" in groups' -i addrs.txt`,
	Args: cobra.ArbitraryArgs,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&filterQuery, "query", "q", "", "Boolean expression to evaluate")
	_ = filterCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	var cfg *config.Configuration
	for _, p := range query.Requested(filterQuery) {
		if p.NeedsConfiguration() {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			break
		}
	}

	q, err := query.Compile(filterQuery, cfg)
	if err != nil {
		return err
	}

	in, err := newInput(cmd, args, network.ParseAddrOrNet)
	if err != nil {
		return err
	}
	if err := in.Apply(sortValues, uniqueValues); err != nil {
		return err
	}

	out := newOutput(cmd)
	defer out.Flush()

	for v, err := range in.All() {
		if err != nil {
			return err
		}
		ok, err := q.Match(cmd.Context(), v)
		if err != nil {
			return err
		}
		if ok {
			out.println(v)
		}
	}
	return out.Flush()
}
