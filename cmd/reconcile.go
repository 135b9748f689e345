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
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkroghdk/vejbill/internal/notification"
)

// reconcileCommands runs one full reconciliation batch: every configured
// rule group against the live Vejman case lists. Intended to be invoked
// from a scheduler once per day.
func reconcileCommands(v *vejbillInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation batch over all configured rule groups",
		Run: func(cmd *cobra.Command, args []string) {
			batchID, err := v.engine.RunBatch(context.Background())
			if err != nil {
				notification.NotifyError(err)
				logrus.Errorf("Batch %s finished with errors: %v", batchID, err)
				return
			}
			logrus.Infof("Batch %s finished", batchID)
		},
	}

	return cmd
}
