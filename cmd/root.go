package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"airvend/pkg/logging"
)

var (
	output      string
	verbose     bool
	contextName string

	log logging.Logger
)

// NewRootCmd returns the root command for the AirVend CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "airvend",
		Short:         "AirVend CLI: prepaid airtime from your terminal",
		Long:          "AirVend CLI: register, manage your wallet balance, and buy prepaid airtime on the AirVend platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logging.NewCLILogger(verbose)
			if output == "json" || !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&output, "output", "", "output format: json|text (default: text)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&contextName, "context", "", "context name (default: current from config)")

	cobra.OnInitialize(initConfig)

	// Subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newWalletCmd())
	rootCmd.AddCommand(newTopUpCmd())
	rootCmd.AddCommand(newAirtimeCmd())
	rootCmd.AddCommand(newTransactionsCmd())
	rootCmd.AddCommand(newContextCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home + "/.airvend")
		viper.SetConfigName("config")
	}
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("AIRVEND")
	viper.AutomaticEnv()

	// Ignore missing config
	_ = viper.ReadInConfig()
}
