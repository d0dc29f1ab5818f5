package main

import (
	"context"
	"fmt"
	"os"

	"retailpricing/cmd"
	"retailpricing/internal/logger"
	"retailpricing/internal/repository"
)

func main() {
	apiHandler, _, err := cmd.InitializeDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := newRootCmd(cliDependencies{
		RepricingService:      apiHandler.RepricingService,
		CatalogFileRepository: repository.NewCatalogFileRepository(),
	})

	ctx := logger.NewContext(context.Background(), logger.New())
	err = root.ExecuteContext(ctx)
	cmd.CloseDependencies(apiHandler)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
