package service

import (
	"context"
	"errors"

	"cropmaster/entities"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("farmland not found")
)

// FarmlandQueries is the read side: each call is a stateless lookup.
type FarmlandQueries interface {
	FindCropLand(ctx context.Context, nic string) ([]entities.Farmland, error)
	FindUncropLand(ctx context.Context, nic string) ([]entities.Farmland, error)
	FindFarmlandByFarmer(ctx context.Context, nic string) ([]entities.Farmland, error)
	FindFarmlandNoNic(ctx context.Context) ([]entities.Farmland, error)
	FindFarmlandNic(ctx context.Context) ([]entities.Farmland, error)
}

type FarmlandService interface {
	FarmlandQueries

	Register(ctx context.Context, f *entities.Farmland) (*entities.Farmland, error)
	GetByID(ctx context.Context, id uint) (*entities.Farmland, error)
	AssignFarmer(ctx context.Context, id uint, nic string) (*entities.Farmland, error)
	ReleaseLand(ctx context.Context, id uint) (*entities.Farmland, error)
	PlantCrop(ctx context.Context, id uint, cropID int) (*entities.Farmland, error)
	ClearCrop(ctx context.Context, id uint) (*entities.Farmland, error)
	ImportLands(ctx context.Context, lands []entities.Farmland) (int, error)
}
