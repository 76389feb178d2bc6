package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const carConfigColumns = `id, workspace_id, model, weekly_rent, weekly_km_limit,
	excess_km_fee, km_per_liter, fuel_price, contract_start, contract_days,
	weekly_earnings_goal, is_active, photo_path, created_at, updated_at`

// CarConfigRepository implements domain.CarConfigRepository using PostgreSQL
type CarConfigRepository struct {
	pool *pgxpool.Pool
}

// NewCarConfigRepository creates a new CarConfigRepository
func NewCarConfigRepository(pool *pgxpool.Pool) *CarConfigRepository {
	return &CarConfigRepository{pool: pool}
}

// Create inserts a vehicle config. Creating an active config deactivates the
// previous active one in the same transaction.
func (r *CarConfigRepository) Create(config *domain.CarConfig) (*domain.CarConfig, error) {
	ctx := context.Background()

	nums, err := decimalsToPgNumeric(config.WeeklyRent, config.WeeklyKmLimit, config.ExcessKmFee,
		config.KmPerLiter, config.FuelPrice, config.WeeklyEarningsGoal)
	if err != nil {
		return nil, fmt.Errorf("convert car config: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if config.IsActive {
		if _, err := tx.Exec(ctx,
			`UPDATE car_configs SET is_active = FALSE, updated_at = NOW()
			 WHERE workspace_id = $1 AND is_active`, config.WorkspaceID); err != nil {
			return nil, fmt.Errorf("deactivate car configs: %w", err)
		}
	}

	created, err := scanCarConfig(tx.QueryRow(ctx,
		`INSERT INTO car_configs (workspace_id, model, weekly_rent, weekly_km_limit,
			excess_km_fee, km_per_liter, fuel_price, contract_start, contract_days,
			weekly_earnings_goal, is_active, photo_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+carConfigColumns,
		config.WorkspaceID, config.Model, nums[0], nums[1], nums[2], nums[3], nums[4],
		timePtrToPgDate(config.ContractStart), config.ContractDays, nums[5],
		config.IsActive, stringPtrToPgText(config.PhotoPath)))
	if err != nil {
		return nil, fmt.Errorf("insert car config: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return created, nil
}

// GetByID retrieves a vehicle config
func (r *CarConfigRepository) GetByID(workspaceID int32, id int32) (*domain.CarConfig, error) {
	return scanCarConfig(r.pool.QueryRow(context.Background(),
		`SELECT `+carConfigColumns+` FROM car_configs WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id))
}

// GetAll lists the vehicle history of a workspace, active first then newest
func (r *CarConfigRepository) GetAll(workspaceID int32) ([]*domain.CarConfig, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+carConfigColumns+` FROM car_configs WHERE workspace_id = $1
		 ORDER BY is_active DESC, created_at DESC, id DESC`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query car configs: %w", err)
	}
	defer rows.Close()

	configs := make([]*domain.CarConfig, 0)
	for rows.Next() {
		c, err := scanCarConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate car configs: %w", err)
	}
	return configs, nil
}

// GetActive retrieves the active vehicle config of a workspace
func (r *CarConfigRepository) GetActive(workspaceID int32) (*domain.CarConfig, error) {
	c, err := scanCarConfig(r.pool.QueryRow(context.Background(),
		`SELECT `+carConfigColumns+` FROM car_configs WHERE workspace_id = $1 AND is_active`,
		workspaceID))
	if errors.Is(err, domain.ErrCarConfigNotFound) {
		return nil, domain.ErrNoActiveCarConfig
	}
	return c, err
}

// Update overwrites the vehicle and contract terms. Activation and photo have
// their own operations.
func (r *CarConfigRepository) Update(config *domain.CarConfig) (*domain.CarConfig, error) {
	nums, err := decimalsToPgNumeric(config.WeeklyRent, config.WeeklyKmLimit, config.ExcessKmFee,
		config.KmPerLiter, config.FuelPrice, config.WeeklyEarningsGoal)
	if err != nil {
		return nil, fmt.Errorf("convert car config: %w", err)
	}

	return scanCarConfig(r.pool.QueryRow(context.Background(),
		`UPDATE car_configs SET
			model = $3, weekly_rent = $4, weekly_km_limit = $5, excess_km_fee = $6,
			km_per_liter = $7, fuel_price = $8, contract_start = $9, contract_days = $10,
			weekly_earnings_goal = $11, updated_at = NOW()
		 WHERE workspace_id = $1 AND id = $2
		 RETURNING `+carConfigColumns,
		config.WorkspaceID, config.ID, config.Model, nums[0], nums[1], nums[2], nums[3], nums[4],
		timePtrToPgDate(config.ContractStart), config.ContractDays, nums[5]))
}

// Activate makes the config the only active one of the workspace
func (r *CarConfigRepository) Activate(workspaceID int32, id int32) (*domain.CarConfig, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Deactivate first so the partial unique index never sees two active rows
	if _, err := tx.Exec(ctx,
		`UPDATE car_configs SET is_active = FALSE, updated_at = NOW()
		 WHERE workspace_id = $1 AND is_active AND id <> $2`, workspaceID, id); err != nil {
		return nil, fmt.Errorf("deactivate car configs: %w", err)
	}

	activated, err := scanCarConfig(tx.QueryRow(ctx,
		`UPDATE car_configs SET is_active = TRUE, updated_at = NOW()
		 WHERE workspace_id = $1 AND id = $2
		 RETURNING `+carConfigColumns, workspaceID, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return activated, nil
}

// UpdatePhoto sets or clears the photo path of a config
func (r *CarConfigRepository) UpdatePhoto(workspaceID int32, id int32, photoPath *string) (*domain.CarConfig, error) {
	return scanCarConfig(r.pool.QueryRow(context.Background(),
		`UPDATE car_configs SET photo_path = $3, updated_at = NOW()
		 WHERE workspace_id = $1 AND id = $2
		 RETURNING `+carConfigColumns,
		workspaceID, id, stringPtrToPgText(photoPath)))
}

// Delete removes a config
func (r *CarConfigRepository) Delete(workspaceID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM car_configs WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete car config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCarConfigNotFound
	}
	return nil
}

// Helper functions

func scanCarConfig(row pgx.Row) (*domain.CarConfig, error) {
	var (
		c             domain.CarConfig
		contractStart pgtype.Date
		photoPath     pgtype.Text
	)
	var weeklyRent, weeklyKmLimit, excessKmFee, kmPerLiter, fuelPrice, weeklyGoal pgtype.Numeric

	err := row.Scan(&c.ID, &c.WorkspaceID, &c.Model, &weeklyRent, &weeklyKmLimit,
		&excessKmFee, &kmPerLiter, &fuelPrice, &contractStart, &c.ContractDays,
		&weeklyGoal, &c.IsActive, &photoPath, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCarConfigNotFound
		}
		return nil, err
	}

	c.WeeklyRent = pgNumericToDecimal(weeklyRent)
	c.WeeklyKmLimit = pgNumericToDecimal(weeklyKmLimit)
	c.ExcessKmFee = pgNumericToDecimal(excessKmFee)
	c.KmPerLiter = pgNumericToDecimal(kmPerLiter)
	c.FuelPrice = pgNumericToDecimal(fuelPrice)
	c.WeeklyEarningsGoal = pgNumericToDecimal(weeklyGoal)
	c.ContractStart = pgDateToTimePtr(contractStart)
	c.PhotoPath = pgTextToStringPtr(photoPath)
	return &c, nil
}
