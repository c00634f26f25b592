package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/data/repos"
	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/apierr"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type PantryItemInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type PantryItemUpdateInput struct {
	Quantity OptionalFloat64 `json:"quantity"`
	Unit     OptionalString  `json:"unit"`
}

type PantryService interface {
	ListPantryItems(dbc dbctx.Context) ([]*types.PantryItem, error)
	GetPantryItem(dbc dbctx.Context, id uint) (*types.PantryItem, error)
	// CreatePantryItem merges into an existing item of the same name: the
	// quantity is added and the unit replaced. merged reports which path ran.
	CreatePantryItem(dbc dbctx.Context, in PantryItemInput) (item *types.PantryItem, merged bool, err error)
	UpdatePantryItem(dbc dbctx.Context, id uint, in PantryItemUpdateInput) (*types.PantryItem, error)
	DeletePantryItem(dbc dbctx.Context, id uint) error
}

type pantryService struct {
	db         *gorm.DB
	log        *logger.Logger
	pantryRepo repos.PantryRepo
	notify     ChangeNotifier
}

func NewPantryService(db *gorm.DB, log *logger.Logger, pantryRepo repos.PantryRepo, notify ChangeNotifier) PantryService {
	if notify == nil {
		notify = NewChangeNotifier(nil, nil)
	}
	return &pantryService{
		db:         db,
		log:        log.With("service", "PantryService"),
		pantryRepo: pantryRepo,
		notify:     notify,
	}
}

func pantryNotFound(id uint) error {
	return apierr.NotFound("pantry_item_not_found", fmt.Errorf("pantry item %d not found", id))
}

func (s *pantryService) ListPantryItems(dbc dbctx.Context) ([]*types.PantryItem, error) {
	out, err := s.pantryRepo.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list pantry: %w", err)
	}
	return out, nil
}

func (s *pantryService) GetPantryItem(dbc dbctx.Context, id uint) (*types.PantryItem, error) {
	item, err := s.pantryRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get pantry item %d: %w", id, err)
	}
	if item == nil {
		return nil, pantryNotFound(id)
	}
	return item, nil
}

func (in PantryItemInput) validate() error {
	var errs []error
	if err := checkText("name", in.Name, 1, maxNameLen); err != nil {
		errs = append(errs, err)
	}
	if err := checkPositive("quantity", in.Quantity); err != nil {
		errs = append(errs, err)
	}
	if err := checkText("unit", in.Unit, 1, maxUnitLen); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *pantryService) CreatePantryItem(dbc dbctx.Context, in PantryItemInput) (*types.PantryItem, bool, error) {
	if err := in.validate(); err != nil {
		return nil, false, apierr.BadRequest("invalid_pantry_item", err)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)

	item, merged, err := s.createOrMerge(dbc, in)
	// A concurrent insert of the same name lost the race on the unique index;
	// the retry sees the committed row and merges into it.
	if err != nil && isUniqueViolation(err) {
		item, merged, err = s.createOrMerge(dbc, in)
	}
	if err != nil {
		return nil, false, err
	}

	if merged {
		s.log.Info("Pantry item merged", "pantry_item_id", item.ID, "quantity", item.Quantity, "unit", item.Unit)
		s.notify.PantryUpdated(dbc.Ctx, item)
	} else {
		s.log.Info("Pantry item created", "pantry_item_id", item.ID)
		s.notify.PantryCreated(dbc.Ctx, item)
	}
	return item, merged, nil
}

func (s *pantryService) createOrMerge(dbc dbctx.Context, in PantryItemInput) (*types.PantryItem, bool, error) {
	var (
		out    *types.PantryItem
		merged bool
	)
	err := dbc.DB(s.db).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		existing, err := s.pantryRepo.GetByNameForUpdate(inner, in.Name)
		if err != nil {
			return fmt.Errorf("lookup pantry item %q: %w", in.Name, err)
		}
		if existing == nil {
			created, err := s.pantryRepo.Create(inner, &types.PantryItem{Name: in.Name, Quantity: in.Quantity, Unit: in.Unit})
			if err != nil {
				return fmt.Errorf("create pantry item: %w", err)
			}
			out = created
			return nil
		}

		total := existing.Quantity + in.Quantity
		if err := s.pantryRepo.UpdateFields(inner, existing.ID, map[string]interface{}{
			"quantity": total,
			"unit":     in.Unit,
		}); err != nil {
			return fmt.Errorf("merge pantry item %d: %w", existing.ID, err)
		}
		out, err = s.pantryRepo.GetByID(inner, existing.ID)
		if err != nil {
			return fmt.Errorf("reload pantry item %d: %w", existing.ID, err)
		}
		merged = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, merged, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *pantryService) UpdatePantryItem(dbc dbctx.Context, id uint, in PantryItemUpdateInput) (*types.PantryItem, error) {
	updates := map[string]interface{}{}
	var errs []error
	if in.Quantity.Set {
		if in.Quantity.Value == nil {
			errs = append(errs, errors.New("quantity cannot be null"))
		} else if err := checkPositive("quantity", *in.Quantity.Value); err != nil {
			errs = append(errs, err)
		} else {
			updates["quantity"] = *in.Quantity.Value
		}
	}
	if in.Unit.Set {
		if in.Unit.Value == nil {
			errs = append(errs, errors.New("unit cannot be null"))
		} else if err := checkText("unit", *in.Unit.Value, 1, maxUnitLen); err != nil {
			errs = append(errs, err)
		} else {
			updates["unit"] = *in.Unit.Value
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, apierr.BadRequest("invalid_pantry_item", err)
	}

	var updated *types.PantryItem
	err := dbc.DB(s.db).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		item, err := s.pantryRepo.GetByID(inner, id)
		if err != nil {
			return fmt.Errorf("get pantry item %d: %w", id, err)
		}
		if item == nil {
			return pantryNotFound(id)
		}
		if err := s.pantryRepo.UpdateFields(inner, id, updates); err != nil {
			return fmt.Errorf("update pantry item %d: %w", id, err)
		}
		updated, err = s.pantryRepo.GetByID(inner, id)
		if err != nil {
			return fmt.Errorf("reload pantry item %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.PantryUpdated(dbc.Ctx, updated)
	return updated, nil
}

func (s *pantryService) DeletePantryItem(dbc dbctx.Context, id uint) error {
	deleted, err := s.pantryRepo.Delete(dbc, id)
	if err != nil {
		return fmt.Errorf("delete pantry item %d: %w", id, err)
	}
	if !deleted {
		return pantryNotFound(id)
	}
	s.notify.PantryDeleted(dbc.Ctx, id)
	return nil
}
