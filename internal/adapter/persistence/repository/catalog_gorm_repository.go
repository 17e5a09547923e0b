package repository

import (
	"context"
	"errors"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// Row models of the directory tables. Only the columns this service reads are
// mapped.

type clientRow struct {
	ID   string `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name"`
}

func (clientRow) TableName() string { return "clients" }

type partRow struct {
	ID   string `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name"`
	Code string `gorm:"column:code"`
}

func (partRow) TableName() string { return "parts" }

type serviceTypeRow struct {
	ID          string `gorm:"primaryKey;column:id"`
	Description string `gorm:"column:description"`
}

func (serviceTypeRow) TableName() string { return "service_types" }

type serviceOrderRow struct {
	ID         string `gorm:"primaryKey;column:id"`
	ClientID   string `gorm:"column:client_id;index"`
	Identifier string `gorm:"column:identifier"`
}

func (serviceOrderRow) TableName() string { return "service_orders" }

// CatalogGormRepository reads the reference directories through GORM.
type CatalogGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ICatalog = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetClient(ctx context.Context, id string) (entities.Client, error) {
	var row clientRow
	if err := r.first(ctx, &row, id); err != nil || row.ID == "" {
		return entities.Client{}, err
	}
	return entities.Client{ID: row.ID, Name: row.Name}, nil
}

func (r *CatalogGormRepository) GetPart(ctx context.Context, id string) (entities.Part, error) {
	var row partRow
	if err := r.first(ctx, &row, id); err != nil || row.ID == "" {
		return entities.Part{}, err
	}
	return entities.Part{ID: row.ID, Name: row.Name, Code: row.Code}, nil
}

func (r *CatalogGormRepository) GetServiceType(ctx context.Context, id string) (entities.ServiceType, error) {
	var row serviceTypeRow
	if err := r.first(ctx, &row, id); err != nil || row.ID == "" {
		return entities.ServiceType{}, err
	}
	return entities.ServiceType{ID: row.ID, Description: row.Description}, nil
}

func (r *CatalogGormRepository) GetServiceOrder(ctx context.Context, id string) (entities.ServiceOrder, error) {
	var row serviceOrderRow
	if err := r.first(ctx, &row, id); err != nil || row.ID == "" {
		return entities.ServiceOrder{}, err
	}
	return toServiceOrder(row), nil
}

func (r *CatalogGormRepository) ListServiceOrdersByClient(ctx context.Context, clientID string) ([]entities.ServiceOrder, error) {
	var rows []serviceOrderRow
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.ServiceOrder, 0, len(rows))
	for _, row := range rows {
		out = append(out, toServiceOrder(row))
	}
	return out, nil
}

// first loads the row with the given primary key; a missing row leaves dest
// untouched and is not an error.
func (r *CatalogGormRepository) first(ctx context.Context, dest any, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func toServiceOrder(row serviceOrderRow) entities.ServiceOrder {
	return entities.ServiceOrder{ID: row.ID, ClientID: row.ClientID, Identifier: row.Identifier}
}
