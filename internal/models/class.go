package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ClassStatusScheduled = "scheduled"
	ClassStatusCompleted = "completed"
	ClassStatusCancelled = "cancelled"
	ClassStatusNoShow    = "no_show"
)

const (
	LocationOnline   = "online"
	LocationInPerson = "in_person"
)

type Class struct {
	ID                 string              `gorm:"primaryKey" json:"id"`
	UserID             string              `gorm:"not null;index" json:"user_id"`
	StudentID          string              `gorm:"not null;index" json:"student_id"`
	Student            *Student            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	ContractorID       string              `gorm:"not null;index" json:"contractor_id"`
	Contractor         *Contractor         `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	StartTime          time.Time           `gorm:"not null;index" json:"start_time"`
	EndTime            time.Time           `gorm:"not null" json:"end_time"`
	DurationMinutes    int                 `gorm:"not null" json:"duration_minutes"`
	Status             string              `gorm:"not null;default:scheduled" json:"status"`
	LocationType       string              `gorm:"not null;default:online" json:"location_type"`
	VirtualMeetingLink string              `json:"virtual_meeting_link,omitempty"`
	CustomRate         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"custom_rate"`
	ClassNotes         string              `json:"class_notes,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (class *Class) BeforeCreate(*gorm.DB) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	return nil
}

// ClassEndTime keeps end time derived from start time and duration.
func ClassEndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

func IsValidClassStatus(status string) bool {
	switch status {
	case ClassStatusScheduled, ClassStatusCompleted, ClassStatusCancelled, ClassStatusNoShow:
		return true
	default:
		return false
	}
}

func IsValidLocationType(locationType string) bool {
	return locationType == LocationOnline || locationType == LocationInPerson
}
