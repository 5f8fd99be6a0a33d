package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ticktock/internal/platform"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "TickTock"

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ticktock",
	Short: "Countdown and stopwatch timers for the terminal",
	Long: `ticktock runs a countdown or stopwatch in the terminal. It shares its
settings file with the desktop app, and every setting can be overridden
with a flag or a TICKTOCK_* environment variable.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the desktop app's settings.yaml)")

	viper.SetDefault("mode", "countdown")
	viper.SetDefault("length_seconds", 25*60)
	viper.SetDefault("allow_overflow", true)
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := platform.ConfigDir(appName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding config directory: %v\n", err)
			os.Exit(1)
		}
		viper.AddConfigPath(configDir)
		viper.SetConfigName("settings")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TICKTOCK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}
