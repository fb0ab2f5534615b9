package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/firefly-engineering/ipkit/internal/logging"
)

var (
	verbose      bool
	logJSON      bool
	inputs       []string
	sortValues   bool
	uniqueValues bool
	configPath   string
)

var rootCmd = &cobra.Command{
	Use:   "ipkit",
	Short: "IP address and network toolkit",
	Long: `ipkit parses, transforms, classifies and filters IP addresses and CIDR
networks read from files, standard input or arguments.

Values are read one per line. Blank lines are skipped and any other line
that does not parse aborts the command.

Groups of networks are declared in ipkit.toml:
  [[groups]]
  name = "internal"
  nets = ["10.0.0.0/8", "192.168.0.0/16"]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, logJSON, cmd.ErrOrStderr())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// flagAliases maps alternate flag spellings to their canonical names.
var flagAliases = map[string]string{
	"uniq":   "unique",
	"prefix": "prefix-len",
}

func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringArrayVarP(&inputs, "input", "i", nil, `Read values from a file, or "-" for standard input (repeatable)`)
	flags.BoolVarP(&sortValues, "sort", "s", false, "Sort values")
	flags.BoolVarP(&uniqueValues, "unique", "u", false, "Drop duplicate values")
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file (default: search $IPKIT_CONFIG, ./ipkit.toml, user and system config dirs)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
