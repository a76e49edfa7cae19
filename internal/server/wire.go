//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"

	"github.com/philly/medium-blog/internal/adapters/rest"
	"github.com/philly/medium-blog/internal/adapters/rest/middleware"
	commentsapp "github.com/philly/medium-blog/internal/comments/application"
	commentsports "github.com/philly/medium-blog/internal/comments/ports"
	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/platform/eventbus"
	"github.com/philly/medium-blog/internal/platform/logger"
	postsapp "github.com/philly/medium-blog/internal/posts/application"
	postsports "github.com/philly/medium-blog/internal/posts/ports"
	"github.com/philly/medium-blog/internal/site"
)

// siteSet builds everything needed to render pages from the content store.
var siteSet = wire.NewSet(
	// Bootstrap phase
	logger.NewBootstrapLogger,
	LoadConfig,

	// Logger configuration
	provideLoggerConfig,
	logger.ProviderSet,

	// Content store and client
	ProvideContentStore,
	ProvideContentClient,
	wire.Bind(new(postsports.ContentReader), new(*content.Client)),
	wire.Bind(new(commentsports.ContentWriter), new(*content.Client)),

	// Application services
	provideRevalidateInterval,
	postsapp.ProviderSet,

	// Rendering
	provideRenderer,
	site.NewBuilder,
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		siteSet,

		// Events
		eventbus.ProviderSet,
		commentsapp.ProviderSet,

		// Page cache
		ProvidePageCache,
		provideRegenerator,

		// REST handlers
		rest.ProviderSet,
		provideVersion,
		provideHealthChecks,

		// Rate limiting
		middleware.ProviderSet,
		provideRateLimitConfig,

		// HTTP Server
		NewHTTPServer,

		// Prerendering
		NewPrerenderer,
		NewScheduler,

		// App
		NewApp,
	)

	return nil, nil, nil
}

// InitializeExporter creates an Exporter writing the site as static files
func InitializeExporter(ctx context.Context) (*Exporter, func(), error) {
	wire.Build(
		siteSet,
		NewExporter,
	)

	return nil, nil, nil
}
