package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackielii/taskboard/internal/pages"
	"github.com/jackielii/taskboard/internal/server"
	"github.com/jackielii/taskboard/internal/structpages"
	"github.com/jackielii/taskboard/internal/views"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "print the route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		table, err := structpages.PrintRoutes("/", pages.Pages{},
			views.New(server.TemplateFS(conf), conf.Debug),
			&pages.Assets{Static: server.StaticFS(conf)},
		)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), table)
		return nil
	},
}
