package models

import "time"

// Banner is the persisted form of a banner record. Column names avoid the
// reserved words "group" and "order".
type Banner struct {
	ID            int       `gorm:"column:id;primaryKey;autoIncrement:false"`
	BannerGroup   string    `gorm:"column:banner_group;not null"`
	Name          string    `gorm:"column:name;not null"`
	Link          string    `gorm:"column:link;not null"`
	DisplayOrder  int       `gorm:"column:display_order;not null"`
	Text1         string    `gorm:"column:text1;not null"`
	Text2         string    `gorm:"column:text2;not null"`
	Text3         string    `gorm:"column:text3;not null"`
	CreatedDate   string    `gorm:"column:created_date;not null"`
	ImageURL      string    `gorm:"column:image_url;not null"`
	ImageFileName string    `gorm:"column:image_file_name;not null"`
	Status        string    `gorm:"column:status;not null;default:active"`
	InsertSeq     int64     `gorm:"column:insert_seq;not null;default:0"`
	InsertedAt    time.Time `gorm:"column:inserted_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Banner) TableName() string {
	return "banners"
}
