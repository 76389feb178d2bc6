package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dailyRecordColumns = `id, workspace_id, record_date, minutes_worked,
	trips_uber, km_uber, earnings_uber, trips_99, km_99, earnings_99,
	fuel_price, km_per_liter, created_at, updated_at`

// DailyRecordRepository implements domain.DailyRecordRepository using PostgreSQL
type DailyRecordRepository struct {
	pool *pgxpool.Pool
}

// NewDailyRecordRepository creates a new DailyRecordRepository
func NewDailyRecordRepository(pool *pgxpool.Pool) *DailyRecordRepository {
	return &DailyRecordRepository{pool: pool}
}

// GetAll retrieves the records of a workspace ordered by date, with their
// expenses and extra earnings
func (r *DailyRecordRepository) GetAll(workspaceID int32, filters *domain.DailyRecordFilters) ([]*domain.DailyRecord, error) {
	ctx := context.Background()

	var start, end pgtype.Date
	if filters != nil {
		start = timePtrToPgDate(filters.StartDate)
		end = timePtrToPgDate(filters.EndDate)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+dailyRecordColumns+` FROM daily_records
		 WHERE workspace_id = $1
		   AND ($2::date IS NULL OR record_date >= $2)
		   AND ($3::date IS NULL OR record_date <= $3)
		 ORDER BY record_date`,
		workspaceID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query daily records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.DailyRecord, 0)
	for rows.Next() {
		record, err := scanDailyRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily records: %w", err)
	}

	if err := loadChildren(ctx, r.pool, records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID retrieves a single record
func (r *DailyRecordRepository) GetByID(workspaceID int32, id int32) (*domain.DailyRecord, error) {
	ctx := context.Background()
	record, err := scanDailyRecord(r.pool.QueryRow(ctx,
		`SELECT `+dailyRecordColumns+` FROM daily_records WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id))
	if err != nil {
		return nil, err
	}
	if err := loadChildren(ctx, r.pool, []*domain.DailyRecord{record}); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByDate retrieves the record of a calendar date
func (r *DailyRecordRepository) GetByDate(workspaceID int32, date time.Time) (*domain.DailyRecord, error) {
	ctx := context.Background()
	record, err := scanDailyRecord(r.pool.QueryRow(ctx,
		`SELECT `+dailyRecordColumns+` FROM daily_records WHERE workspace_id = $1 AND record_date = $2`,
		workspaceID, timeToPgDate(date)))
	if err != nil {
		return nil, err
	}
	if err := loadChildren(ctx, r.pool, []*domain.DailyRecord{record}); err != nil {
		return nil, err
	}
	return record, nil
}

// UpsertAccumulate inserts the submission as a new record, or adds its trips,
// distance, earnings and minutes to the existing record of that date. Fuel
// rates take the submitted value when it is set. The submitted expenses are
// appended in the same transaction. The returned bool is true when a new
// record was created.
func (r *DailyRecordRepository) UpsertAccumulate(workspaceID int32, sub *domain.EarningsSubmission) (*domain.DailyRecord, bool, error) {
	ctx := context.Background()

	nums, err := decimalsToPgNumeric(sub.KmUber, sub.EarningsUber, sub.Km99, sub.Earnings99, sub.FuelPrice, sub.KmPerLiter)
	if err != nil {
		return nil, false, fmt.Errorf("convert submission: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var created bool
	record, err := scanDailyRecord(tx.QueryRow(ctx,
		`INSERT INTO daily_records (workspace_id, record_date, minutes_worked,
			trips_uber, km_uber, earnings_uber, trips_99, km_99, earnings_99,
			fuel_price, km_per_liter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (workspace_id, record_date) DO UPDATE SET
			minutes_worked = daily_records.minutes_worked + EXCLUDED.minutes_worked,
			trips_uber = daily_records.trips_uber + EXCLUDED.trips_uber,
			km_uber = daily_records.km_uber + EXCLUDED.km_uber,
			earnings_uber = daily_records.earnings_uber + EXCLUDED.earnings_uber,
			trips_99 = daily_records.trips_99 + EXCLUDED.trips_99,
			km_99 = daily_records.km_99 + EXCLUDED.km_99,
			earnings_99 = daily_records.earnings_99 + EXCLUDED.earnings_99,
			fuel_price = CASE WHEN EXCLUDED.fuel_price > 0 THEN EXCLUDED.fuel_price ELSE daily_records.fuel_price END,
			km_per_liter = CASE WHEN EXCLUDED.km_per_liter > 0 THEN EXCLUDED.km_per_liter ELSE daily_records.km_per_liter END,
			updated_at = NOW()
		 RETURNING `+dailyRecordColumns+`, (xmax = 0) AS inserted`,
		workspaceID, timeToPgDate(sub.Date), sub.MinutesWorked,
		sub.TripsUber, nums[0], nums[1], sub.Trips99, nums[2], nums[3],
		nums[4], nums[5]), &created)
	if err != nil {
		return nil, false, fmt.Errorf("upsert daily record: %w", err)
	}

	for _, e := range sub.Expenses {
		if _, err := insertExpense(ctx, tx, workspaceID, record.ID, e); err != nil {
			return nil, false, err
		}
	}

	if err := loadChildren(ctx, tx, []*domain.DailyRecord{record}); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit transaction: %w", err)
	}
	return record, created, nil
}

// Update overwrites the activity fields of a record
func (r *DailyRecordRepository) Update(record *domain.DailyRecord) (*domain.DailyRecord, error) {
	ctx := context.Background()

	nums, err := decimalsToPgNumeric(record.KmUber, record.EarningsUber, record.Km99, record.Earnings99, record.FuelPrice, record.KmPerLiter)
	if err != nil {
		return nil, fmt.Errorf("convert record: %w", err)
	}

	updated, err := scanDailyRecord(r.pool.QueryRow(ctx,
		`UPDATE daily_records SET
			record_date = $3, minutes_worked = $4,
			trips_uber = $5, km_uber = $6, earnings_uber = $7,
			trips_99 = $8, km_99 = $9, earnings_99 = $10,
			fuel_price = $11, km_per_liter = $12, updated_at = NOW()
		 WHERE workspace_id = $1 AND id = $2
		 RETURNING `+dailyRecordColumns,
		record.WorkspaceID, record.ID, timeToPgDate(record.Date), record.MinutesWorked,
		record.TripsUber, nums[0], nums[1], record.Trips99, nums[2], nums[3],
		nums[4], nums[5]))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	if err := loadChildren(ctx, r.pool, []*domain.DailyRecord{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a record; its expenses and extra earnings cascade
func (r *DailyRecordRepository) Delete(workspaceID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM daily_records WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete daily record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDailyRecordNotFound
	}
	return nil
}

// AddExpense appends an expense to a record of the workspace
func (r *DailyRecordRepository) AddExpense(workspaceID int32, recordID int32, expense *domain.Expense) (*domain.Expense, error) {
	return insertExpense(context.Background(), r.pool, workspaceID, recordID, expense)
}

// DeleteExpense removes an expense from a record of the workspace
func (r *DailyRecordRepository) DeleteExpense(workspaceID int32, recordID int32, expenseID int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM expenses e USING daily_records d
		 WHERE e.record_id = d.id AND d.workspace_id = $1 AND d.id = $2 AND e.id = $3`,
		workspaceID, recordID, expenseID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// AddExtraEarning appends an extra earning to a record of the workspace. An
// earning without a date takes the record's date.
func (r *DailyRecordRepository) AddExtraEarning(workspaceID int32, recordID int32, earning *domain.ExtraEarning) (*domain.ExtraEarning, error) {
	amount, err := decimalToPgNumeric(earning.Amount)
	if err != nil {
		return nil, fmt.Errorf("convert amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO extra_earnings (record_id, earning_date, amount, category, description)
		 SELECT d.id, COALESCE($3::date, d.record_date), $4, $5, $6
		 FROM daily_records d WHERE d.workspace_id = $1 AND d.id = $2
		 RETURNING id, record_id, earning_date, amount, category, description, created_at`,
		workspaceID, recordID, timeToPgDate(earning.Date), amount, earning.Category, stringPtrToPgText(earning.Description))

	created, err := scanExtraEarning(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDailyRecordNotFound
		}
		return nil, err
	}
	return created, nil
}

// DeleteExtraEarning removes an extra earning from a record of the workspace
func (r *DailyRecordRepository) DeleteExtraEarning(workspaceID int32, recordID int32, earningID int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM extra_earnings x USING daily_records d
		 WHERE x.record_id = d.id AND d.workspace_id = $1 AND d.id = $2 AND x.id = $3`,
		workspaceID, recordID, earningID)
	if err != nil {
		return fmt.Errorf("delete extra earning: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExtraEarningNotFound
	}
	return nil
}

// Helper functions

// insertExpense inserts through the parent record so a record of another
// workspace is reported as not found
func insertExpense(ctx context.Context, q querier, workspaceID, recordID int32, expense *domain.Expense) (*domain.Expense, error) {
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("convert amount: %w", err)
	}

	row := q.QueryRow(ctx,
		`INSERT INTO expenses (record_id, amount, category)
		 SELECT d.id, $3, $4 FROM daily_records d WHERE d.workspace_id = $1 AND d.id = $2
		 RETURNING id, record_id, amount, category, created_at`,
		workspaceID, recordID, amount, expense.Category)

	created, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDailyRecordNotFound
		}
		return nil, err
	}
	return created, nil
}

// loadChildren fills the expenses and extra earnings of the records with one
// query per child table
func loadChildren(ctx context.Context, q querier, records []*domain.DailyRecord) error {
	if len(records) == 0 {
		return nil
	}

	byID := make(map[int32]*domain.DailyRecord, len(records))
	ids := make([]int32, 0, len(records))
	for _, rec := range records {
		rec.Expenses = make([]*domain.Expense, 0)
		rec.ExtraEarnings = make([]*domain.ExtraEarning, 0)
		byID[rec.ID] = rec
		ids = append(ids, rec.ID)
	}

	rows, err := q.Query(ctx,
		`SELECT id, record_id, amount, category, created_at FROM expenses
		 WHERE record_id = ANY($1) ORDER BY created_at, id`, ids)
	if err != nil {
		return fmt.Errorf("query expenses: %w", err)
	}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return err
		}
		if rec, ok := byID[e.RecordID]; ok {
			rec.Expenses = append(rec.Expenses, e)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate expenses: %w", err)
	}

	rows, err = q.Query(ctx,
		`SELECT id, record_id, earning_date, amount, category, description, created_at FROM extra_earnings
		 WHERE record_id = ANY($1) ORDER BY created_at, id`, ids)
	if err != nil {
		return fmt.Errorf("query extra earnings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		x, err := scanExtraEarning(rows)
		if err != nil {
			return err
		}
		if rec, ok := byID[x.RecordID]; ok {
			rec.ExtraEarnings = append(rec.ExtraEarnings, x)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate extra earnings: %w", err)
	}
	return nil
}

// scanDailyRecord scans the dailyRecordColumns, followed by any extra
// destinations the query returns
func scanDailyRecord(row pgx.Row, extra ...any) (*domain.DailyRecord, error) {
	var rec domain.DailyRecord
	var kmUber, earningsUber, km99, earnings99, fuelPrice, kmPerLiter pgtype.Numeric
	dest := []any{
		&rec.ID, &rec.WorkspaceID, &rec.Date, &rec.MinutesWorked,
		&rec.TripsUber, &kmUber, &earningsUber, &rec.Trips99, &km99, &earnings99,
		&fuelPrice, &kmPerLiter, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDailyRecordNotFound
		}
		return nil, err
	}

	rec.KmUber = pgNumericToDecimal(kmUber)
	rec.EarningsUber = pgNumericToDecimal(earningsUber)
	rec.Km99 = pgNumericToDecimal(km99)
	rec.Earnings99 = pgNumericToDecimal(earnings99)
	rec.FuelPrice = pgNumericToDecimal(fuelPrice)
	rec.KmPerLiter = pgNumericToDecimal(kmPerLiter)
	return &rec, nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e      domain.Expense
		amount pgtype.Numeric
	)
	if err := row.Scan(&e.ID, &e.RecordID, &amount, &e.Category, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	return &e, nil
}

func scanExtraEarning(row pgx.Row) (*domain.ExtraEarning, error) {
	var (
		x           domain.ExtraEarning
		amount      pgtype.Numeric
		description pgtype.Text
	)
	if err := row.Scan(&x.ID, &x.RecordID, &x.Date, &amount, &x.Category, &description, &x.CreatedAt); err != nil {
		return nil, err
	}
	x.Amount = pgNumericToDecimal(amount)
	x.Description = pgTextToStringPtr(description)
	return &x, nil
}
