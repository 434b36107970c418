/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.elastic.co/apm/module/apmlogrus/v2"

	"github.com/tcdirect/direct"
	"github.com/tcdirect/direct/config"
	"github.com/tcdirect/direct/database"
	"github.com/tcdirect/direct/internal/notification"
)

// CLI wraps the root cobra command.
type CLI struct {
	cmd *cobra.Command
}

// directInstance holds what preRun builds so subcommands can share it.
type directInstance struct {
	direct *direct.Direct
	cnf    *config.Configuration
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and builds the query facade before any command runs.
func preRun(app *directInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		// config only prints, it must work without a reachable database
		if cmd.Name() == "config" {
			app.cnf = cnf
			return nil
		}

		logrus.AddHook(&apmlogrus.Hook{})

		d, err := setupDirect(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.direct = d
		app.cnf = cnf
		return nil
	}
}

func setupDirect(cfg *config.Configuration) (*direct.Direct, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	d, err := direct.NewDirect(db)
	if err != nil {
		return nil, fmt.Errorf("error creating direct: %v", err)
	}
	return d, nil
}

func NewCLI() *CLI {
	var configFile string
	app := &directInstance{}

	var rootCmd = &cobra.Command{
		Use:   "direct",
		Short: "Direct API challenge queries",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./direct.json", "Configuration file for the direct api")
	rootCmd.PersistentPreRunE = preRun(app, &configFile)

	rootCmd.AddCommand(serverCommands(app))
	rootCmd.AddCommand(configCommands())

	return &CLI{cmd: rootCmd}
}

func (c CLI) executeCLI() {
	if err := c.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
