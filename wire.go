//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"nomassess/ioc"
	"nomassess/pkg/server"
)

func InitApp(ctx context.Context) (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitInventoryClient,
		ioc.InitInventoryStore,
		ioc.InitVerdictConfig,
		ioc.InitAssessor,
		ioc.InitNominationFetcher,
		ioc.InitAssessHandler,
		ioc.InitGinEngine,
		ioc.InitScheduler,
		ioc.InitHeartbeat,
		server.NewHTTPServer,
	))
}
