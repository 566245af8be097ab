package payments

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/washpoint/washpoint/internal/config"
)

// Module exposes the payment collector client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PaymentCollectorAddress, p.Config.PaymentTimeout, p.Logger)
}
