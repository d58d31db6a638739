package reportrepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
)

const collectionName = "utilization_reports"

// ReportRepository guarda relatórios de utilização no MongoDB.
type ReportRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewReportRepository conecta ao MongoDB e valida a conexão com um ping.
func NewReportRepository(ctx context.Context, uri, dbName string) (*ReportRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("falha no ping do mongodb: %w", err)
	}

	collection := client.Database(dbName).Collection(collectionName)
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "generated_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("falha ao criar índice de relatórios: %w", err)
	}

	return &ReportRepository{client: client, collection: collection}, nil
}

// Save insere um relatório.
func (r *ReportRepository) Save(ctx context.Context, report domain.UtilizationReport) error {
	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("falha ao inserir relatório de utilização: %w", err)
	}
	return nil
}

// Latest devolve o relatório gerado mais recentemente.
func (r *ReportRepository) Latest(ctx context.Context) (domain.UtilizationReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})

	var report domain.UtilizationReport
	err := r.collection.FindOne(ctx, bson.D{}, opts).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.UtilizationReport{}, apperror.NewNotFoundError("Nenhum relatório de utilização gerado ainda.")
	}
	if err != nil {
		return domain.UtilizationReport{}, apperror.NewInternalError("Falha ao buscar relatório de utilização.", err)
	}
	return report, nil
}

// Close encerra a conexão com o MongoDB.
func (r *ReportRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
