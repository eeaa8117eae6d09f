package claimservice

import (
	"log/slog"
	"time"

	httpadapter "claimerapi/contexts/snapshot-claims/claim-service/adapters/http"
	"claimerapi/contexts/snapshot-claims/claim-service/adapters/memory"
	"claimerapi/contexts/snapshot-claims/claim-service/application/commands"
	"claimerapi/contexts/snapshot-claims/claim-service/application/queries"
	"claimerapi/contexts/snapshot-claims/claim-service/domain/entities"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Claims         ports.ClaimRepository
	Chain          ports.ChainClient
	Clock          ports.Clock
	Publisher      ports.EventPublisher
	SnapshotHeight int64
	Deadline       time.Time
	ScaleDigits    int
	ServiceName    string
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	verify := commands.VerifyClaimUseCase{
		Claims:         deps.Claims,
		Chain:          deps.Chain,
		Clock:          deps.Clock,
		Publisher:      deps.Publisher,
		SnapshotHeight: deps.SnapshotHeight,
		Deadline:       deps.Deadline,
		ScaleDigits:    deps.ScaleDigits,
		ServiceName:    deps.ServiceName,
		Logger:         deps.Logger,
	}
	reads := queries.UseCase{
		Claims: deps.Claims,
		Chain:  deps.Chain,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			VerifyClaim: verify,
			Queries:     reads,
			ScaleDigits: deps.ScaleDigits,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module onto the memory store; the chain client
// and publisher still come from the caller.
func NewInMemoryModule(
	seed []entities.Claim,
	chain ports.ChainClient,
	publisher ports.EventPublisher,
	snapshotHeight int64,
	deadline time.Time,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Claims:         store,
		Chain:          chain,
		Clock:          store,
		Publisher:      publisher,
		SnapshotHeight: snapshotHeight,
		Deadline:       deadline,
		ScaleDigits:    8,
		ServiceName:    "claimer-api",
		Logger:         logger,
	})
	module.Store = store
	return module
}
