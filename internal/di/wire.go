//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"PairSignal/internal/usecase"
	"PairSignal/pkg/config"
	"PairSignal/pkg/server"
)

var infraSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideClickHouseClient,
	ProvideKafkaProducer,
	ProvideRedisCache,
)

var analyzerSet = wire.NewSet(
	ProvideBarProvider,
	ProvideEventStore,
	ProvideReportPublisher,
	ProvideReportCache,
	ProvidePairAnalyzer,
)

// InitializeApp wires up all dependencies and returns the HTTP application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		infraSet,
		analyzerSet,
		ProvidePairsHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeAnalyzer wires the pair analyzer for one-shot CLI runs.
func InitializeAnalyzer(cfg *config.Config) (*usecase.PairAnalyzer, func(), error) {
	wire.Build(
		infraSet,
		analyzerSet,
	)
	return nil, nil, nil
}
