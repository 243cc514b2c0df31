package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// University is immutable reference data referenced by Program.
type University struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"size:255;not null"`
	Email   string `json:"email" gorm:"size:120"`
	Phone   string `json:"phone" gorm:"size:20"`
	Address string `json:"address" gorm:"size:255"`
	Website string `json:"website" gorm:"size:255"`
}

// Program is immutable reference data loaded by the seed importer. Fee
// is cleaned from free-text currency strings at import time.
type Program struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"size:255;not null;index"`
	Duration     string          `json:"duration" gorm:"size:100"`
	UniversityID uint            `json:"university_id" gorm:"index"`
	DegreeLevel  string          `json:"degree_level" gorm:"size:50;index"`
	Mode         string          `json:"mode" gorm:"size:50;index"`
	Fee          decimal.Decimal `json:"fee" gorm:"type:decimal(12,2)"`
	Requirements string          `json:"requirements" gorm:"type:text"`
	Scholarships string          `json:"scholarships" gorm:"type:text"`
	AreaOfStudy  string          `json:"area_of_study" gorm:"size:255;index"`
	CreatedAt    time.Time       `json:"created_at"`

	University University `json:"-" gorm:"foreignKey:UniversityID"`
}
