package model

// Province is a first-level administrative region (il). IDs follow the national plate codes.
type Province struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`

	Districts []District `gorm:"foreignKey:ProvinceID;constraint:OnDelete:CASCADE" json:"districts,omitempty"`
}

func (Province) TableName() string {
	return "provinces"
}

// District is a second-level region (ilçe) inside a province.
type District struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ProvinceID uint   `gorm:"not null;index:idx_district_province_name,unique" json:"province_id"`
	Name       string `gorm:"type:varchar(100);not null;index:idx_district_province_name,unique" json:"name"`
}

func (District) TableName() string {
	return "districts"
}

type VenueCategory struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Slug     string `gorm:"type:varchar(100);uniqueIndex" json:"slug"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}

func (VenueCategory) TableName() string {
	return "venue_categories"
}
