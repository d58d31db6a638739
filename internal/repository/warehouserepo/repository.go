package warehouserepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/cache"
	"gocapacity/internal/pkg/database"
	"gocapacity/internal/pkg/logger"
)

// O snapshot do registro (armazéns + itens) fica em cache sob uma chave versionada.
// Toda escrita incrementa a geração depois do commit; um snapshot lido do DB antes da
// escrita fica preso à geração antiga e nunca mais é servido.
const (
	snapshotGenerationKey = "warehouses:gen"
	snapshotKeyPrefix     = "warehouses:snapshot:"
)

func snapshotKey(generation int) string {
	return snapshotKeyPrefix + strconv.Itoa(generation)
}

// WarehouseRepository persiste armazéns e itens no PostgreSQL e mantém o snapshot em cache (Cache-Aside).
type WarehouseRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewWarehouseRepository cria e retorna uma nova instância do Repositório de Armazéns.
func NewWarehouseRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *WarehouseRepository {
	return &WarehouseRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// CreateWarehouse insere um novo armazém. A coluna seq registra a ordem de cadastro.
func (r *WarehouseRepository) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	r.logger.Debug("Iniciando CreateWarehouse no repositório.", map[string]interface{}{"id": warehouse.ID, "name": warehouse.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := time.Now().UTC()
	warehouse.CreatedAt = now
	warehouse.UpdatedAt = now

	query := `
        INSERT INTO warehouses (id, name, height, width, length, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		warehouse.ID, warehouse.Name,
		warehouse.Capacity.Height, warehouse.Capacity.Width, warehouse.Capacity.Length,
		warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if database.IsUniqueViolation(err) {
		r.logger.Info("Armazém duplicado.", map[string]interface{}{"id": warehouse.ID})
		return domain.Warehouse{}, apperror.NewConflictError(fmt.Sprintf("Armazém com ID %d já existe.", warehouse.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao inserir armazém no DB.", err)
		return domain.Warehouse{}, apperror.NewDBError("Falha ao criar armazém", err)
	}

	r.invalidateSnapshot(ctx)
	if warehouse.Items == nil {
		warehouse.Items = []domain.Item{}
	}
	return warehouse, nil
}

// GetWarehouseByID busca um armazém e seus itens pelo ID.
func (r *WarehouseRepository) GetWarehouseByID(ctx context.Context, id int) (domain.Warehouse, error) {
	r.logger.Debug("Iniciando GetWarehouseByID no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, height, width, length, created_at, updated_at
        FROM warehouses
        WHERE id = $1`

	warehouse, err := scanWarehouse(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Armazém não encontrado.", map[string]interface{}{"id": id})
		return domain.Warehouse{}, apperror.NewNotFoundError(fmt.Sprintf("Armazém com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar armazém no DB.", err)
		return domain.Warehouse{}, apperror.NewDBError("Falha ao buscar armazém", err)
	}

	itemsQuery := `
        SELECT warehouse_id, id, name, height, width, length, start_date, end_date, is_active, created_at
        FROM items
        WHERE warehouse_id = $1
        ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctxTimeout, itemsQuery, id)
	if err != nil {
		r.logger.Error("Falha ao buscar itens do armazém no DB.", err)
		return domain.Warehouse{}, apperror.NewDBError("Falha ao buscar itens", err)
	}
	defer rows.Close()

	for rows.Next() {
		_, item, err := scanItem(rows)
		if err != nil {
			return domain.Warehouse{}, apperror.NewDBError("Falha ao escanear item", err)
		}
		warehouse.Items = append(warehouse.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Warehouse{}, apperror.NewDBError("Erro de iteração de itens", err)
	}

	return warehouse, nil
}

// GetAllWarehouses lista os armazéns (sem itens) na ordem do registro.
func (r *WarehouseRepository) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	r.logger.Debug("Iniciando GetAllWarehouses no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	warehouses, _, err := r.loadWarehouses(ctxTimeout)
	if err != nil {
		return nil, err
	}
	return warehouses, nil
}

// DeleteWarehouse remove um armazém; os itens caem junto (ON DELETE CASCADE).
func (r *WarehouseRepository) DeleteWarehouse(ctx context.Context, id int) error {
	r.logger.Debug("Iniciando DeleteWarehouse no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar armazém no DB.", err)
		return apperror.NewDBError("Falha ao deletar armazém", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Armazém com ID %d não encontrado para deleção.", id))
	}

	r.invalidateSnapshot(ctx)
	return nil
}

// AddItem aloca um item em um armazém existente. A verificação do armazém e a inserção
// acontecem na mesma transação, com a linha do armazém bloqueada.
func (r *WarehouseRepository) AddItem(ctx context.Context, warehouseID int, item domain.Item) (domain.Item, error) {
	r.logger.Debug("Iniciando AddItem no repositório.", map[string]interface{}{"warehouse_id": warehouseID, "item_id": item.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctxTimeout, `SELECT id FROM warehouses WHERE id = $1 FOR UPDATE`, warehouseID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NewNotFoundError(fmt.Sprintf("Armazém com ID %d não encontrado.", warehouseID))
		}
		if err != nil {
			return apperror.NewDBError("Falha ao bloquear armazém", err)
		}

		query := `
            INSERT INTO items (warehouse_id, id, name, height, width, length, start_date, end_date, is_active, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		_, err = tx.ExecContext(ctxTimeout, query,
			warehouseID, item.ID, item.Name,
			item.Dimensions.Height, item.Dimensions.Width, item.Dimensions.Length,
			item.StartDate, item.EndDate, item.IsActive, item.CreatedAt,
		)
		if database.IsUniqueViolation(err) {
			return apperror.NewConflictError(fmt.Sprintf("Item %d já existe no armazém %d.", item.ID, warehouseID))
		}
		if err != nil {
			return apperror.NewDBError("Falha ao inserir item", err)
		}

		_, err = tx.ExecContext(ctxTimeout, `UPDATE warehouses SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), warehouseID)
		if err != nil {
			return apperror.NewDBError("Falha ao atualizar armazém", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Falha ao alocar item.", err)
		return domain.Item{}, asAppError(err)
	}

	r.invalidateSnapshot(ctx)
	return item, nil
}

// DeactivateItem marca o item como inativo e devolve o estado final.
func (r *WarehouseRepository) DeactivateItem(ctx context.Context, warehouseID, itemID int) (domain.Item, error) {
	r.logger.Debug("Iniciando DeactivateItem no repositório.", map[string]interface{}{"warehouse_id": warehouseID, "item_id": itemID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE items SET is_active = FALSE
        WHERE warehouse_id = $1 AND id = $2
        RETURNING warehouse_id, id, name, height, width, length, start_date, end_date, is_active, created_at`

	_, item, err := scanItem(r.DB.QueryRowContext(ctxTimeout, query, warehouseID, itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, apperror.NewNotFoundError(fmt.Sprintf("Item %d não encontrado no armazém %d.", itemID, warehouseID))
	}
	if err != nil {
		r.logger.Error("Falha ao desativar item no DB.", err)
		return domain.Item{}, apperror.NewDBError("Falha ao desativar item", err)
	}

	r.invalidateSnapshot(ctx)
	return item, nil
}

// Snapshot devolve todos os armazéns com seus itens, na ordem do registro.
// Cache-Aside: lê do cache da geração atual; em MISS carrega do DB e popula o cache
// somente se nenhuma escrita aconteceu durante a carga.
func (r *WarehouseRepository) Snapshot(ctx context.Context) ([]domain.Warehouse, error) {
	generation, genErr := r.generation(ctx)
	if genErr != nil {
		// Sem geração confiável o cache é ignorado nesta chamada.
		r.logger.Warn("Falha ao ler geração do snapshot.", map[string]interface{}{"error": genErr.Error()})
	} else {
		var cached []domain.Warehouse
		err := cache.GetJSON(ctx, r.Cache, snapshotKey(generation), &cached)
		if err == nil {
			r.logger.Debug("Snapshot do registro lido do cache.", map[string]interface{}{"count": len(cached), "generation": generation})
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("Falha ao ler snapshot do cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	warehouses, err := r.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		r.storeSnapshot(ctx, generation, warehouses)
	}
	r.logger.Debug("Snapshot do registro carregado do DB.", map[string]interface{}{"count": len(warehouses)})
	return warehouses, nil
}

// loadSnapshot lê armazéns (ORDER BY seq) e distribui os itens entre eles.
func (r *WarehouseRepository) loadSnapshot(ctx context.Context) ([]domain.Warehouse, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	warehouses, index, err := r.loadWarehouses(ctxTimeout)
	if err != nil {
		return nil, err
	}

	query := `
        SELECT i.warehouse_id, i.id, i.name, i.height, i.width, i.length, i.start_date, i.end_date, i.is_active, i.created_at
        FROM items i
        JOIN warehouses w ON w.id = i.warehouse_id
        ORDER BY w.seq, i.created_at, i.id`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao carregar itens para o snapshot.", err)
		return nil, apperror.NewDBError("Falha ao carregar itens", err)
	}
	defer rows.Close()

	for rows.Next() {
		warehouseID, item, err := scanItem(rows)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao escanear item", err)
		}
		if i, ok := index[warehouseID]; ok {
			warehouses[i].Items = append(warehouses[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro de iteração de itens", err)
	}
	return warehouses, nil
}

// storeSnapshot grava o snapshot lido na geração informada, a menos que ela já tenha mudado.
func (r *WarehouseRepository) storeSnapshot(ctx context.Context, generation int, warehouses []domain.Warehouse) {
	current, err := r.generation(ctx)
	if err != nil || current != generation {
		r.logger.Debug("Registro alterado durante a carga, snapshot não será cacheado.", map[string]interface{}{"generation": generation, "current": current})
		return
	}
	if err := cache.SetJSON(ctx, r.Cache, snapshotKey(generation), warehouses, r.CacheTTL); err != nil {
		r.logger.Warn("Falha ao gravar snapshot no cache.", map[string]interface{}{"error": err.Error()})
	}
}

// generation devolve a geração atual do registro. Chave ausente equivale à geração 0.
func (r *WarehouseRepository) generation(ctx context.Context) (int, error) {
	n, err := r.Cache.GetInt(ctx, snapshotGenerationKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	return n, err
}

// loadWarehouses lê os armazéns ordenados por seq e devolve também o índice id -> posição.
func (r *WarehouseRepository) loadWarehouses(ctx context.Context) ([]domain.Warehouse, map[int]int, error) {
	query := `
        SELECT id, name, height, width, length, created_at, updated_at
        FROM warehouses
        ORDER BY seq`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Falha ao executar query de armazéns.", err)
		return nil, nil, apperror.NewDBError("Falha ao buscar todos os armazéns", err)
	}
	defer rows.Close()

	warehouses := []domain.Warehouse{}
	index := make(map[int]int)
	for rows.Next() {
		warehouse, err := scanWarehouse(rows)
		if err != nil {
			r.logger.Error("Falha ao escanear linha de armazém.", err)
			return nil, nil, apperror.NewDBError("Falha ao escanear armazém", err)
		}
		index[warehouse.ID] = len(warehouses)
		warehouses = append(warehouses, warehouse)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperror.NewDBError("Erro de iteração de armazéns", err)
	}
	return warehouses, index, nil
}

// invalidateSnapshot avança a geração após o commit de qualquer escrita.
// Falha no cache só é registrada.
func (r *WarehouseRepository) invalidateSnapshot(ctx context.Context) {
	generation, err := r.Cache.Incr(ctx, snapshotGenerationKey)
	if err != nil {
		r.logger.Warn("Falha ao avançar geração do snapshot.", map[string]interface{}{"error": err.Error()})
		return
	}
	r.logger.Debug("Snapshot invalidado.", map[string]interface{}{"generation": generation})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWarehouse(s scanner) (domain.Warehouse, error) {
	var w domain.Warehouse
	err := s.Scan(&w.ID, &w.Name, &w.Capacity.Height, &w.Capacity.Width, &w.Capacity.Length, &w.CreatedAt, &w.UpdatedAt)
	w.Items = []domain.Item{}
	return w, err
}

func scanItem(s scanner) (int, domain.Item, error) {
	var (
		warehouseID int
		item        domain.Item
	)
	err := s.Scan(
		&warehouseID, &item.ID, &item.Name,
		&item.Dimensions.Height, &item.Dimensions.Width, &item.Dimensions.Length,
		&item.StartDate, &item.EndDate, &item.IsActive, &item.CreatedAt,
	)
	item.StartDate = domain.Day(item.StartDate)
	item.EndDate = domain.Day(item.EndDate)
	return warehouseID, item, err
}

func asAppError(err error) error {
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.NewDBError("Falha na transação", err)
}
