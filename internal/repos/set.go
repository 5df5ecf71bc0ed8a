package repos

import (
	"strings"

	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

// set columns accepted by List ordering; anything else never reaches SQL.
var setSortColumns = map[string]struct{}{
	"name":       {},
	"created_at": {},
	"updated_at": {},
}

type SetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, set *types.Set) (*types.Set, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, query types.ListSetsQuery) ([]*types.Set, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, setID uuid.UUID) (*types.Set, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, userID, setID uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, setID uuid.UUID) (int64, error)
}

type setRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSetRepo(db *gorm.DB, baseLog *logger.Logger) SetRepo {
	repoLog := baseLog.With("repo", "SetRepo")
	return &setRepo{db: db, log: repoLog}
}

// scoped restricts a query to rows owned by userID. Every method goes
// through it, so a not-owned row is indistinguishable from an absent one.
func (sr *setRepo) scoped(tx *gorm.DB, userID uuid.UUID) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.Model(&types.Set{}).Where("user_id = ?", userID)
}

func (sr *setRepo) Create(ctx context.Context, tx *gorm.DB, set *types.Set) (*types.Set, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(set).Error; err != nil {
		return nil, err
	}
	return set, nil
}

func (sr *setRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, query types.ListSetsQuery) ([]*types.Set, error) {
	q := sr.scoped(tx, userID).WithContext(ctx)

	if search := strings.TrimSpace(query.Search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	sortColumn := query.Sort
	if _, ok := setSortColumns[sortColumn]; !ok {
		sortColumn = "updated_at"
	}
	direction := "DESC"
	if strings.EqualFold(query.Order, "asc") {
		direction = "ASC"
	}

	offset := (query.Page - 1) * query.Limit

	var results []*types.Set
	if err := q.
		Order(sortColumn + " " + direction).
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *setRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, setID uuid.UUID) (*types.Set, error) {
	var result types.Set
	if err := sr.scoped(tx, userID).WithContext(ctx).
		Where("id = ?", setID).
		Take(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *setRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, setID uuid.UUID, fields map[string]any) (int64, error) {
	res := sr.scoped(tx, userID).WithContext(ctx).
		Where("id = ?", setID).
		Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (sr *setRepo) Delete(ctx context.Context, tx *gorm.DB, userID, setID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	res := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, setID).
		Delete(&types.Set{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
