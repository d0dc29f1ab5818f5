package main

import (
	"log"
	"os"

	"retailpricing/cmd"

	"go.uber.org/zap"
)

func main() {
	apiHandler, config, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	zap.S().Infof("starting pricing api on :%d (commit %s)", config.Port, os.Getenv("commit_hash"))
	err = apiHandler.StartApi(config.Port)
	if err != nil {
		log.Fatal(err)
	}
}
