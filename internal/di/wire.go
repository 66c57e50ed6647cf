//go:build wireinject
// +build wireinject

package di

import (
	"MarketMon/pkg/config"
	"MarketMon/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideBytesCache,
		ProvideUniverse,
		ProvideConventions,
		ProvideSpreadPairs,
		ProvideSlopeSpec,

		// Data sources and sinks
		ProvidePriceSource,
		ProvideYieldSource,
		ProvideBarSink,
		ProvideMailer,

		// Use cases
		ProvideResolver,
		ProvideFetcher,
		ProvideMonitor,
		ProvideReportBuilder,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
