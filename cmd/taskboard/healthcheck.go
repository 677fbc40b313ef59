package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackielii/taskboard/internal/healthcheck"
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "exit non-zero unless the server answers GET / with 200",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := cmd.Flags().GetString("url")
		if err != nil {
			return err
		}
		if url == "" {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			host := conf.Host
			if host == "0.0.0.0" || host == "" {
				host = "127.0.0.1"
			}
			url = "http://" + net.JoinHostPort(host, strconv.Itoa(conf.Port)) + "/"
		}
		retries, err := cmd.Flags().GetInt("retries")
		if err != nil {
			return err
		}
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		if err := healthcheck.Probe(ctx, url, retries); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	healthcheckCmd.Flags().String("url", "", "URL to probe (default: the configured address)")
	healthcheckCmd.Flags().Int("retries", 3, "retries before giving up")
	healthcheckCmd.Flags().Duration("timeout", 10*time.Second, "overall deadline")
}
