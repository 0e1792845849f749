package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"cropmaster/entities"
	"cropmaster/pkg/farmland/repository"
)

const importBatchSize = 200

type farmlandRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmlandRepository { return &farmlandRepo{db} }

func (r *farmlandRepo) Create(ctx context.Context, f *entities.Farmland) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *farmlandRepo) BulkCreate(ctx context.Context, fs []entities.Farmland) error {
	if len(fs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&fs, importBatchSize).Error
	})
}

func (r *farmlandRepo) FindByID(ctx context.Context, id uint) (*entities.Farmland, error) {
	var f entities.Farmland
	if err := r.db.WithContext(ctx).Where("land_id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmlandRepo) UpdateNIC(ctx context.Context, id uint, nic *string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entities.Farmland{}).Where("land_id = ?", id).Update("nic", nic)
	return res.RowsAffected, res.Error
}

func (r *farmlandRepo) UpdateCrop(ctx context.Context, id uint, cropID int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entities.Farmland{}).Where("land_id = ?", id).Update("crop_id", cropID)
	return res.RowsAffected, res.Error
}

func (r *farmlandRepo) CropLand(ctx context.Context, nic string) ([]entities.Farmland, error) {
	return r.find(ctx, "nic = ? AND crop_id <> 0", nic)
}

func (r *farmlandRepo) UncropLand(ctx context.Context, nic string) ([]entities.Farmland, error) {
	return r.find(ctx, "nic = ? AND crop_id = 0", nic)
}

func (r *farmlandRepo) ByFarmer(ctx context.Context, nic string) ([]entities.Farmland, error) {
	return r.find(ctx, "nic = ?", nic)
}

func (r *farmlandRepo) WithoutNIC(ctx context.Context) ([]entities.Farmland, error) {
	return r.find(ctx, "nic IS NULL")
}

func (r *farmlandRepo) WithNIC(ctx context.Context) ([]entities.Farmland, error) {
	return r.find(ctx, "nic IS NOT NULL")
}

// find always returns a non-nil slice so an empty match encodes as [].
func (r *farmlandRepo) find(ctx context.Context, cond string, args ...any) ([]entities.Farmland, error) {
	out := []entities.Farmland{}
	if err := r.db.WithContext(ctx).Where(cond, args...).Order("land_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
