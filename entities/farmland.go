package entities

import "time"

type Farmland struct {
	LandID    uint    `gorm:"primaryKey" json:"land_id"`
	NIC       *string `gorm:"index:idx_farmlands_nic_crop,priority:1" json:"nic"`                        // nil = unassigned
	CropID    int     `gorm:"not null;default:0;index:idx_farmlands_nic_crop,priority:2" json:"crop_id"` // 0 = not planted
	Location  string  `json:"location"`
	AreaAcres float64 `json:"area_acres"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cropped reports whether a crop is currently planted on the parcel.
func (f *Farmland) Cropped() bool { return f.CropID != 0 }

// Assigned reports whether the parcel belongs to a registered farmer.
func (f *Farmland) Assigned() bool { return f.NIC != nil }
