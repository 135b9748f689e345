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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	// DEFAULT_INVOICE_ROLE is the Vejman role used to resolve the invoice
	// recipient when a case has no explicit invoice role ("ansøger").
	DEFAULT_INVOICE_ROLE = 1

	DEFAULT_VEJMAN_URL     = "https://vejman.vd.dk"
	DEFAULT_FETCH_TIMEOUT  = 500
	DEFAULT_VEJMAN_STATE   = "8"
	DEFAULT_AUTHORITY_CODE = 751
)

var ConfigStore atomic.Value

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"VEJBILL_DATA_SOURCE_DNS"`
}

type VejmanConfig struct {
	Url        string `json:"url" envconfig:"VEJBILL_VEJMAN_URL"`
	Token      string `json:"token" envconfig:"VEJBILL_VEJMAN_TOKEN"`
	Authority  int64  `json:"authority" envconfig:"VEJBILL_VEJMAN_AUTHORITY"`
	CaseState  string `json:"case_state" envconfig:"VEJBILL_VEJMAN_CASE_STATE"`
	TimeoutSec int    `json:"timeout_sec" envconfig:"VEJBILL_VEJMAN_TIMEOUT_SEC"`
}

type MailConfig struct {
	SendGridKey   string `json:"sendgrid_key" envconfig:"VEJBILL_MAIL_SENDGRID_KEY"`
	FromName      string `json:"from_name" envconfig:"VEJBILL_MAIL_FROM_NAME"`
	FromAddress   string `json:"from_address" envconfig:"VEJBILL_MAIL_FROM_ADDRESS"`
	ObserverEmail string `json:"observer_email" envconfig:"VEJBILL_MAIL_OBSERVER_EMAIL"`
}

type RobotConfig struct {
	// Initials identify rows the robot itself has touched in Vejman;
	// cases carrying them are excluded from the batch.
	Initials      string `json:"initials" envconfig:"VEJBILL_ROBOT_INITIALS"`
	InvoiceRoleID int64  `json:"invoice_role_id" envconfig:"VEJBILL_ROBOT_INVOICE_ROLE_ID"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName  string           `json:"project_name" envconfig:"VEJBILL_PROJECT_NAME"`
	DataSource   DataSourceConfig `json:"data_source"`
	Vejman       VejmanConfig     `json:"vejman"`
	Mail         MailConfig       `json:"mail"`
	Robot        RobotConfig      `json:"robot"`
	Notification Notification     `json:"notification"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("vejbill", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called vejbill.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Vejbill"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.Vejman.Token == "" {
		log.Println("Error: Vejman token is empty. It's a required field.")
		return errors.New("vejman token is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Vejman.Url = strings.TrimSpace(cnf.Vejman.Url)
	cnf.Vejman.Token = strings.TrimSpace(cnf.Vejman.Token)

	if cnf.Vejman.Url == "" {
		cnf.Vejman.Url = DEFAULT_VEJMAN_URL
	}
	if cnf.Vejman.Authority == 0 {
		cnf.Vejman.Authority = DEFAULT_AUTHORITY_CODE
	}
	if cnf.Vejman.CaseState == "" {
		cnf.Vejman.CaseState = DEFAULT_VEJMAN_STATE
	}
	if cnf.Vejman.TimeoutSec == 0 {
		log.Printf("Warning: Vejman timeout not specified in config. Setting default: %d seconds", DEFAULT_FETCH_TIMEOUT)
		cnf.Vejman.TimeoutSec = DEFAULT_FETCH_TIMEOUT
	}

	if cnf.Mail.FromName == "" {
		cnf.Mail.FromName = "VejmanFakturaRobot"
	}
	if cnf.Mail.FromAddress == "" {
		cnf.Mail.FromAddress = "noreply@aarhus.dk"
	}

	if cnf.Robot.InvoiceRoleID == 0 {
		cnf.Robot.InvoiceRoleID = DEFAULT_INVOICE_ROLE
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
