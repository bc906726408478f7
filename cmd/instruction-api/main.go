package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		logrus.StandardLogger().WithField("type", "instruction-api").WithError(err).Error("command failed")
		os.Exit(1)
	}
}
