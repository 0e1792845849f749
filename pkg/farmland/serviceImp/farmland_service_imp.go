package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"cropmaster/entities"
	repo "cropmaster/pkg/farmland/repository"
	"cropmaster/pkg/farmland/service"
	"cropmaster/pkg/metrics"
)

type farmlandSvc struct{ r repo.FarmlandRepository }

func NewFarmlandService(r repo.FarmlandRepository) service.FarmlandService { return &farmlandSvc{r} }

func cleanNIC(nic string) (string, error) {
	nic = strings.TrimSpace(nic)
	if nic == "" {
		return "", fmt.Errorf("%w: nic is required", service.ErrInvalidArgument)
	}
	return nic, nil
}

func (s *farmlandSvc) byNIC(ctx context.Context, op, nic string, q func(context.Context, string) ([]entities.Farmland, error)) ([]entities.Farmland, error) {
	nic, err := cleanNIC(nic)
	if err != nil {
		metrics.ObserveQuery(op, 0, metrics.ResultInvalid)
		return nil, err
	}
	return s.run(ctx, op, func(ctx context.Context) ([]entities.Farmland, error) { return q(ctx, nic) })
}

func (s *farmlandSvc) run(ctx context.Context, op string, q func(context.Context) ([]entities.Farmland, error)) ([]entities.Farmland, error) {
	start := time.Now()
	out, err := q(ctx)
	if err != nil {
		metrics.ObserveQuery(op, time.Since(start), metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.ObserveQuery(op, time.Since(start), metrics.ResultOK)
	return out, nil
}

func (s *farmlandSvc) FindCropLand(ctx context.Context, nic string) ([]entities.Farmland, error) {
	return s.byNIC(ctx, "crop_land", nic, s.r.CropLand)
}

func (s *farmlandSvc) FindUncropLand(ctx context.Context, nic string) ([]entities.Farmland, error) {
	return s.byNIC(ctx, "uncrop_land", nic, s.r.UncropLand)
}

func (s *farmlandSvc) FindFarmlandByFarmer(ctx context.Context, nic string) ([]entities.Farmland, error) {
	return s.byNIC(ctx, "by_farmer", nic, s.r.ByFarmer)
}

func (s *farmlandSvc) FindFarmlandNoNic(ctx context.Context) ([]entities.Farmland, error) {
	return s.run(ctx, "no_nic", s.r.WithoutNIC)
}

func (s *farmlandSvc) FindFarmlandNic(ctx context.Context) ([]entities.Farmland, error) {
	return s.run(ctx, "with_nic", s.r.WithNIC)
}

// normalize enforces the write-side invariants shared by Register and ImportLands.
func normalize(f *entities.Farmland) error {
	if f.CropID < 0 {
		return fmt.Errorf("%w: crop_id must not be negative", service.ErrInvalidArgument)
	}
	if f.AreaAcres < 0 {
		return fmt.Errorf("%w: area_acres must not be negative", service.ErrInvalidArgument)
	}
	if f.NIC != nil {
		if nic := strings.TrimSpace(*f.NIC); nic == "" {
			f.NIC = nil
		} else {
			f.NIC = &nic
		}
	}
	f.Location = strings.TrimSpace(f.Location)
	f.LandID = 0
	return nil
}

func (s *farmlandSvc) Register(ctx context.Context, f *entities.Farmland) (*entities.Farmland, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil farmland", service.ErrInvalidArgument)
	}
	if err := normalize(f); err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("register farmland: %w", err)
	}
	return f, nil
}

func (s *farmlandSvc) GetByID(ctx context.Context, id uint) (*entities.Farmland, error) {
	f, err := s.r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: land_id %d", service.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get farmland %d: %w", id, err)
	}
	return f, nil
}

// afterUpdate reloads the parcel, mapping a zero-row update to ErrNotFound.
func (s *farmlandSvc) afterUpdate(ctx context.Context, id uint, n int64, err error) (*entities.Farmland, error) {
	if err != nil {
		return nil, fmt.Errorf("update farmland %d: %w", id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: land_id %d", service.ErrNotFound, id)
	}
	return s.GetByID(ctx, id)
}

func (s *farmlandSvc) AssignFarmer(ctx context.Context, id uint, nic string) (*entities.Farmland, error) {
	nic, err := cleanNIC(nic)
	if err != nil {
		return nil, err
	}
	n, err := s.r.UpdateNIC(ctx, id, &nic)
	return s.afterUpdate(ctx, id, n, err)
}

func (s *farmlandSvc) ReleaseLand(ctx context.Context, id uint) (*entities.Farmland, error) {
	n, err := s.r.UpdateNIC(ctx, id, nil)
	return s.afterUpdate(ctx, id, n, err)
}

func (s *farmlandSvc) PlantCrop(ctx context.Context, id uint, cropID int) (*entities.Farmland, error) {
	if cropID <= 0 {
		return nil, fmt.Errorf("%w: crop_id must be positive", service.ErrInvalidArgument)
	}
	n, err := s.r.UpdateCrop(ctx, id, cropID)
	return s.afterUpdate(ctx, id, n, err)
}

func (s *farmlandSvc) ClearCrop(ctx context.Context, id uint) (*entities.Farmland, error) {
	n, err := s.r.UpdateCrop(ctx, id, 0)
	return s.afterUpdate(ctx, id, n, err)
}

func (s *farmlandSvc) ImportLands(ctx context.Context, lands []entities.Farmland) (int, error) {
	for i := range lands {
		if err := normalize(&lands[i]); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	if err := s.r.BulkCreate(ctx, lands); err != nil {
		return 0, fmt.Errorf("import farmlands: %w", err)
	}
	return len(lands), nil
}
