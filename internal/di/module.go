package di

import (
	"go.uber.org/fx"

	"github.com/washpoint/washpoint/internal/adapter/payments"
	"github.com/washpoint/washpoint/internal/app"
	"github.com/washpoint/washpoint/internal/config"
	"github.com/washpoint/washpoint/internal/logger"
	"github.com/washpoint/washpoint/internal/pkg/auth"
	"github.com/washpoint/washpoint/internal/server/http/handlers"
	"github.com/washpoint/washpoint/internal/server/http/router"
	"github.com/washpoint/washpoint/internal/storage/postgres"
	"github.com/washpoint/washpoint/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payments.Module,
		usecase.Module,
		fx.Provide(func(f *app.LaundryFacade) handlers.LaundryFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
