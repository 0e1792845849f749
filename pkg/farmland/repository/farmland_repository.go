package repository

import (
	"context"

	"cropmaster/entities"
)

type FarmlandRepository interface {
	Create(ctx context.Context, f *entities.Farmland) error
	BulkCreate(ctx context.Context, fs []entities.Farmland) error
	FindByID(ctx context.Context, id uint) (*entities.Farmland, error)
	UpdateNIC(ctx context.Context, id uint, nic *string) (int64, error)
	UpdateCrop(ctx context.Context, id uint, cropID int) (int64, error)

	CropLand(ctx context.Context, nic string) ([]entities.Farmland, error)
	UncropLand(ctx context.Context, nic string) ([]entities.Farmland, error)
	ByFarmer(ctx context.Context, nic string) ([]entities.Farmland, error)
	WithoutNIC(ctx context.Context) ([]entities.Farmland, error)
	WithNIC(ctx context.Context) ([]entities.Farmland, error)
}
