// Package cli implements the politimeline command tree.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"politimeline/internal/log"
)

// EnvPrefix prefixes the environment variables that mirror every flag,
// e.g. POLITIMELINE_CONFIG or POLITIMELINE_WINDOW_END.
const EnvPrefix = "POLITIMELINE"

// RootOptions holds state shared by all commands.
type RootOptions struct {
	v *viper.Viper
}

// NewRootCommand creates the root command for the politimeline CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{v: newViper()}

	cmd := &cobra.Command{
		Use:   "politimeline",
		Short: "Render political alignment timelines as SVG",
		Long: "politimeline draws who held the head of state and head of government offices\n" +
			"over time, shading periods in which both were held by the same political bloc.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.bind(cmd); err != nil {
				return err
			}
			if opts.v.GetBool("debug") {
				log.SetLevel(log.LevelDebug)
			}
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "YAML style configuration file (optional)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewComplementCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// bind exposes the running command's flags through viper so that an unset
// flag falls back to its environment variable.
func (o *RootOptions) bind(cmd *cobra.Command) error {
	var err error
	bindAll := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if err == nil {
				err = o.v.BindPFlag(f.Name, f)
			}
		})
	}
	bindAll(cmd.InheritedFlags())
	bindAll(cmd.LocalFlags())
	return err
}
