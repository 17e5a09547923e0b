package interfaces

import (
	"context"

	"fieldservice_quotes/internal/domain/entities"
)

// ICatalog is the read-only view over the reference directories (clients,
// parts, service types, service orders). Lookups return a zero-value record
// when the id is unknown.
type ICatalog interface {
	GetClient(ctx context.Context, id string) (entities.Client, error)
	GetPart(ctx context.Context, id string) (entities.Part, error)
	GetServiceType(ctx context.Context, id string) (entities.ServiceType, error)
	GetServiceOrder(ctx context.Context, id string) (entities.ServiceOrder, error)
	ListServiceOrdersByClient(ctx context.Context, clientID string) ([]entities.ServiceOrder, error)
}
