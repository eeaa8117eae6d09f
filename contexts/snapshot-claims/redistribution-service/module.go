package redistributionservice

import (
	"log/slog"

	httpadapter "claimerapi/contexts/snapshot-claims/redistribution-service/adapters/http"
	"claimerapi/contexts/snapshot-claims/redistribution-service/application"
	"claimerapi/contexts/snapshot-claims/redistribution-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Source ports.ClaimSource
	Params application.Params
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Source: deps.Source,
		Params: deps.Params,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}
