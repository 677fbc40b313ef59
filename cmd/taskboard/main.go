package main

import (
	"fmt"
	"os"

	"code.cloudfoundry.org/lager"
	"github.com/spf13/cobra"

	"github.com/jackielii/taskboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "taskboard",
	Short:        "serves the taskboard pages",
	Long:         "taskboard serves the home, search, calendar and settings pages on 0.0.0.0:5555 unless configured otherwise.",
	RunE:         serve,
	SilenceUsage: true,
}

func init() {
	addConfigFlags(rootCmd)
	rootCmd.AddCommand(serveCmd, routesCmd, healthcheckCmd)
}

func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "path to a YAML config file")
	flags.String("host", config.DefaultHost, "host to listen on")
	flags.IntP("port", "p", config.DefaultPort, "port to listen on")
	flags.String("templates", "", "read templates from this directory instead of the embedded ones")
	flags.String("static", "", "read static assets from this directory instead of the embedded ones")
	flags.Bool("debug", false, "re-parse templates on every request and log at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	conf, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("host") {
		conf.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		conf.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("templates") {
		conf.TemplatesDir, _ = flags.GetString("templates")
	}
	if flags.Changed("static") {
		conf.StaticDir, _ = flags.GetString("static")
	}
	if flags.Changed("debug") {
		conf.Debug, _ = flags.GetBool("debug")
	}
	return conf, conf.Validate()
}

func newLogger(conf config.Config) (lager.Logger, error) {
	level, err := conf.LagerLevel()
	if err != nil {
		return nil, err
	}
	logger := lager.NewLogger("taskboard")
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, level))
	return logger, nil
}
