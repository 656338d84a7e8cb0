package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const customerSettingsCollection = "customer_settings"

//go:generate mockgen -source=customer_settings.go -destination=mocks/mock_customer_settings.go -package=mocks

type CustomerSettingsRepository interface {
	GetByID(ctx context.Context, customerID string) (*domain.CustomerSettings, error)
	ListActive(ctx context.Context) ([]*domain.CustomerSettings, error)
}

type customerSettingsRepository struct {
	collection *mongo.Collection
}

func NewCustomerSettingsRepository(db *mongo.Database) CustomerSettingsRepository {
	return &customerSettingsRepository{
		collection: db.Collection(customerSettingsCollection),
	}
}

func (r *customerSettingsRepository) GetByID(ctx context.Context, customerID string) (*domain.CustomerSettings, error) {
	settings := &domain.CustomerSettings{}

	err := r.collection.FindOne(ctx, bson.M{"_id": customerID}).Decode(settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar configurações do cliente %s: %w", customerID, err)
	}

	return settings, nil
}

func (r *customerSettingsRepository) ListActive(ctx context.Context) ([]*domain.CustomerSettings, error) {
	cursor, err := r.collection.Find(ctx, activeCustomersFilter(), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes ativos: %w", err)
	}
	defer cursor.Close(ctx)

	customers := make([]*domain.CustomerSettings, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("erro ao decodificar clientes ativos: %w", err)
	}

	return customers, nil
}

func activeCustomersFilter() bson.M {
	return bson.M{"status": domain.CustomerStatusActive}
}
