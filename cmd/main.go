/*
Copyright 2025 Vejbill Authors.

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

	"github.com/mkroghdk/vejbill"
	"github.com/mkroghdk/vejbill/config"
	"github.com/mkroghdk/vejbill/database"
	"github.com/mkroghdk/vejbill/internal/notification"
)

// Vejbill represents the CLI application, encapsulating the root Cobra command.
type Vejbill struct {
	cmd *cobra.Command
}

// vejbillInstance holds the engine instance and its configuration, shared by
// the subcommands.
type vejbillInstance struct {
	engine *vejbill.Vejbill
	cnf    *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and initializes the engine before running
// any subcommand.
func preRun(app *vejbillInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("vejbill.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		engine, err := setupVejbill(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.engine = engine
		app.cnf = cnf

		return nil
	}
}

// setupVejbill connects the data source and builds the engine from it.
func setupVejbill(cfg *config.Configuration) (*vejbill.Vejbill, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	engine, err := vejbill.NewVejbill(db)
	if err != nil {
		return nil, fmt.Errorf("error creating vejbill: %v", err)
	}
	return engine, nil
}

// NewCLI creates the command-line interface for the reconciliation robot.
func NewCLI() *Vejbill {
	var configFile string
	v := &vejbillInstance{}

	var rootCmd = &cobra.Command{
		Use:   "vejbill",
		Short: "Vejman billing reconciliation robot",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./vejbill.json", "Configuration file for the reconciliation robot")

	rootCmd.PersistentPreRunE = preRun(v)

	rootCmd.AddCommand(reconcileCommands(v))
	rootCmd.AddCommand(migrateCommands(v))

	return &Vejbill{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur.
func (w Vejbill) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
