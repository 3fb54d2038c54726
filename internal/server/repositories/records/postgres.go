package records

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/dmitrijs2005/hopekeeper/internal/common"
	"github.com/dmitrijs2005/hopekeeper/internal/dbx"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type selectFunc func(ctx context.Context, db sqlscan.Querier, query string, args ...any) ([]entities.Row, error)

var selectors = map[string]selectFunc{
	entities.MoodEntries:         selectRows[entities.MoodEntry, *entities.MoodEntry],
	entities.ThoughtRecords:      selectRows[entities.ThoughtRecord, *entities.ThoughtRecord],
	entities.ErpSessions:         selectRows[entities.ErpSession, *entities.ErpSession],
	entities.UserPrefs:           selectRows[entities.UserPreferences, *entities.UserPreferences],
	entities.ErpPlans:            selectRows[entities.ErpPlan, *entities.ErpPlan],
	entities.MeditationSessions:  selectRows[entities.MeditationSession, *entities.MeditationSession],
	entities.CrisisLogs:          selectRows[entities.CrisisLog, *entities.CrisisLog],
	entities.Achievements:        selectRows[entities.Achievement, *entities.Achievement],
	entities.SleepSessions:       selectRows[entities.SleepSession, *entities.SleepSession],
	entities.EducationProgresses: selectRows[entities.EducationProgress, *entities.EducationProgress],
	entities.ChatSessions:        selectRows[entities.ChatSession, *entities.ChatSession],
}

// touched lists the tables whose updated_at follows every update.
var touched = map[string]bool{
	entities.ChatSessions:        true,
	entities.UserPrefs:           true,
	entities.ErpPlans:            true,
	entities.EducationProgresses: true,
}

func selectRows[T any, PT interface {
	*T
	entities.Row
}](ctx context.Context, db sqlscan.Querier, query string, args ...any) ([]entities.Row, error) {
	var dst []T
	if err := sqlscan.Select(ctx, db, &dst, query, args...); err != nil {
		return nil, err
	}
	out := make([]entities.Row, len(dst))
	for i := range dst {
		out[i] = PT(&dst[i])
	}
	return out, nil
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID, collection string) ([]entities.Row, error) {
	sel, ok := selectors[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCollection, collection)
	}

	query, args, err := psql.Select("*").
		From(collection).
		Where(sq.Eq{"user_id": userID}).
		OrderBy(entities.OrderColumn(collection) + " DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := sel(ctx, r.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return rows, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, userID, collection string, values map[string]any) (entities.Row, error) {
	row, err := entities.NewRow(collection)
	if err != nil {
		return nil, err
	}

	set := make(map[string]any, len(values)+1)
	for k, v := range values {
		set[k] = v
	}
	set["user_id"] = userID

	suffix := "RETURNING *"
	if collection == entities.UserPrefs {
		suffix = upsertSuffix(values) + " " + suffix
	}

	query, args, err := psql.Insert(collection).
		SetMap(set).
		Suffix(suffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := sqlscan.Get(ctx, r.db, row, query, args...); err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	return row, nil
}

// upsertSuffix keeps user_preferences at one row per user.
func upsertSuffix(values map[string]any) string {
	cols := make([]string, 0, len(values))
	for k := range values {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	var b strings.Builder
	b.WriteString("ON CONFLICT (user_id) DO UPDATE SET ")
	for _, c := range cols {
		b.WriteString(c + " = EXCLUDED." + c + ", ")
	}
	b.WriteString("updated_at = now()")
	return b.String()
}

func (r *PostgresRepository) Update(ctx context.Context, userID, collection, id string, set map[string]any) (entities.Row, error) {
	row, err := entities.NewRow(collection)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrInvalidPatch)
	}

	b := psql.Update(collection).
		SetMap(set).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING *")
	if touched[collection] {
		b = b.Set("updated_at", sq.Expr("now()"))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := sqlscan.Get(ctx, r.db, row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("update %s: %w", collection, err)
	}
	return row, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, collection, id string) (bool, error) {
	if !entities.Known(collection) {
		return false, fmt.Errorf("%w: %q", common.ErrUnknownCollection, collection)
	}

	query, args, err := psql.Delete(collection).Where(sq.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	return n > 0, nil
}
