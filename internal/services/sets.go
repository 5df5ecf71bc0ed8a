package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/apierr"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/repos"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

const (
	setDefaultPage  = 1
	setDefaultLimit = 10
	setDefaultSort  = "updated_at"
	setDefaultOrder = "desc"
)

type SetService interface {
	Create(ctx context.Context, userID uuid.UUID, cmd types.CreateSetCommand) (*types.SetDTO, error)
	List(ctx context.Context, userID uuid.UUID, query types.ListSetsQuery) ([]types.SetDTO, error)
	GetByID(ctx context.Context, userID, setID uuid.UUID) (*types.SetDTO, error)
	Update(ctx context.Context, userID, setID uuid.UUID, cmd types.UpdateSetCommand) (*types.SetDTO, error)
	Remove(ctx context.Context, userID, setID uuid.UUID) error
}

type setService struct {
	db      *gorm.DB
	log     *logger.Logger
	setRepo repos.SetRepo
}

func NewSetService(db *gorm.DB, baseLog *logger.Logger, setRepo repos.SetRepo) SetService {
	serviceLog := baseLog.With("service", "SetService")
	return &setService{
		db:      db,
		log:     serviceLog,
		setRepo: setRepo,
	}
}

// requireOwner rejects an empty owner id before any store call is made.
func requireOwner(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apierr.Invalid("user_context_required", errors.New("User context is required"))
	}
	return nil
}

func (ss *setService) Create(ctx context.Context, userID uuid.UUID, cmd types.CreateSetCommand) (*types.SetDTO, error) {
	if err := requireOwner(userID); err != nil {
		return nil, err
	}

	now := time.Now()
	set := &types.Set{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      cmd.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := ss.setRepo.Create(ctx, nil, set)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("set_name_conflict", errors.New("A set with this name already exists"))
		}
		ss.log.Error("Create set failed", "error", err, "user_id", userID)
		return nil, apierr.Upstream("create_set_failed", errors.New("Unable to create set"))
	}

	dto := types.NewSetDTO(created)
	return &dto, nil
}

func (ss *setService) List(ctx context.Context, userID uuid.UUID, query types.ListSetsQuery) ([]types.SetDTO, error) {
	if err := requireOwner(userID); err != nil {
		return nil, err
	}

	normalized := applyListDefaults(query)

	rows, err := ss.setRepo.ListByUser(ctx, nil, userID, normalized)
	if err != nil {
		ss.log.Error("List sets failed", "error", err, "user_id", userID)
		return nil, apierr.Upstream("list_sets_failed", errors.New("Unable to fetch sets"))
	}

	items := make([]types.SetDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.NewSetDTO(row))
	}
	return items, nil
}

func (ss *setService) GetByID(ctx context.Context, userID, setID uuid.UUID) (*types.SetDTO, error) {
	if err := requireOwner(userID); err != nil {
		return nil, err
	}

	row, err := ss.setRepo.GetByID(ctx, nil, userID, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("set_not_found", errors.New("Set not found"))
		}
		ss.log.Error("Get set failed", "error", err, "user_id", userID, "set_id", setID)
		return nil, apierr.Upstream("get_set_failed", errors.New("Unable to fetch set"))
	}

	dto := types.NewSetDTO(row)
	return &dto, nil
}

func (ss *setService) Update(ctx context.Context, userID, setID uuid.UUID, cmd types.UpdateSetCommand) (*types.SetDTO, error) {
	if err := requireOwner(userID); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":        cmd.Name,
		"entrance":    cmd.Entrance,
		"offertory":   cmd.Offertory,
		"communion":   cmd.Communion,
		"adoration":   cmd.Adoration,
		"recessional": cmd.Recessional,
		"updated_at":  time.Now(),
	}

	affected, err := ss.setRepo.UpdateFields(ctx, nil, userID, setID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("set_name_conflict", errors.New("A set with this name already exists"))
		}
		ss.log.Error("Update set failed", "error", err, "user_id", userID, "set_id", setID)
		return nil, apierr.Upstream("update_set_failed", errors.New("Unable to update set"))
	}
	if affected == 0 {
		// Absent and not-owned rows look the same here on purpose.
		return nil, apierr.NotFound("set_not_found", errors.New("Set not found"))
	}

	return ss.GetByID(ctx, userID, setID)
}

func (ss *setService) Remove(ctx context.Context, userID, setID uuid.UUID) error {
	if err := requireOwner(userID); err != nil {
		return err
	}

	affected, err := ss.setRepo.Delete(ctx, nil, userID, setID)
	if err != nil {
		ss.log.Error("Delete set failed", "error", err, "user_id", userID, "set_id", setID)
		return apierr.Upstream("delete_set_failed", errors.New("Unable to delete set"))
	}
	if affected == 0 {
		return apierr.NotFound("set_not_found", errors.New("Set not found"))
	}
	return nil
}

func applyListDefaults(query types.ListSetsQuery) types.ListSetsQuery {
	normalized := query
	normalized.Search = strings.TrimSpace(query.Search)
	if normalized.Page <= 0 {
		normalized.Page = setDefaultPage
	}
	if normalized.Limit <= 0 {
		normalized.Limit = setDefaultLimit
	}
	if normalized.Sort == "" {
		normalized.Sort = setDefaultSort
	}
	if normalized.Order == "" {
		normalized.Order = setDefaultOrder
	}
	return normalized
}
