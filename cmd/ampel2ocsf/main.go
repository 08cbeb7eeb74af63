// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/carabiner-dev/evidence/internal/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		logrus.Fatal(err)
	}
}
