package models

import "gorm.io/gorm"

// Exchange identifies a remote trading venue.
type Exchange struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}
