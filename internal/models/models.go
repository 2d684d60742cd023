package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	Tags         []Tag                `gorm:"serializer:json" json:"tags"`
	NotifSetting NotificationSettings `gorm:"serializer:json" json:"notif_setting"`
}

type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NotificationSettings are stored with the user and returned as-is. Nothing
// in the service sends notifications.
type NotificationSettings struct {
	Enabled     bool   `json:"enabled"`
	Timezone    string `json:"timezone"`
	DailyDigest struct {
		Enabled bool   `json:"enabled"`
		Time    string `json:"time,omitempty"`
	} `json:"daily_digest"`
	Event struct {
		DeadlineDMinus []int `json:"deadline_d_minus"`
	} `json:"event"`
	Channel struct {
		Email bool `json:"email"`
		Push  bool `json:"push"`
	} `json:"channel"`
}

// DefaultNotificationSettings mirrors the defaults new accounts start with.
func DefaultNotificationSettings() NotificationSettings {
	var n NotificationSettings
	n.Enabled = true
	n.Timezone = "Asia/Seoul"
	n.DailyDigest.Enabled = true
	n.Event.DeadlineDMinus = []int{}
	n.Channel.Email = true
	return n
}

type JobSummary struct {
	Role         string   `json:"role,omitempty"`
	Requirements []string `json:"requirements"`
	Preferred    []string `json:"preferred"`
	Stack        []string `json:"stack"`
	Process      string   `json:"process,omitempty"`
	Location     string   `json:"location,omitempty"`
}

type JobPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Fingerprint string         `gorm:"uniqueIndex;not null" json:"fingerprint"`
	Title       string         `gorm:"not null" json:"title"`
	Company     string         `gorm:"not null;index" json:"company"`
	Summary     *JobSummary    `gorm:"serializer:json" json:"summary"`
	TechStack   pq.StringArray `gorm:"type:text[]" json:"tech_stack"`
	Deadline    *time.Time     `json:"deadline"`
	Link        *string        `gorm:"uniqueIndex" json:"link"`
}

// BookmarkStatus is the persisted application status of a bookmark.
type BookmarkStatus string

const (
	BookmarkSaved     BookmarkStatus = "SAVED"
	BookmarkApplied   BookmarkStatus = "APPLIED"
	BookmarkInterview BookmarkStatus = "INTERVIEW"
	BookmarkOffer     BookmarkStatus = "OFFER"
	BookmarkRejected  BookmarkStatus = "REJECTED"
)

func (s BookmarkStatus) Valid() bool {
	switch s {
	case BookmarkSaved, BookmarkApplied, BookmarkInterview, BookmarkOffer, BookmarkRejected:
		return true
	}
	return false
}

type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint    `gorm:"not null;uniqueIndex:idx_bookmark_user_job" json:"user_id"`
	JobID  uint    `gorm:"not null;uniqueIndex:idx_bookmark_user_job" json:"job_id"`
	Job    JobPost `json:"job,omitempty"`

	Status         BookmarkStatus `gorm:"default:'SAVED'" json:"status"`
	Memo           string         `gorm:"type:text" json:"memo"`
	NextActionDate *time.Time     `json:"next_action_date"`
	IsNotified     bool           `gorm:"default:false" json:"is_notified"`
}

type ScheduleType string

const (
	ScheduleDocument   ScheduleType = "DOCUMENT"
	ScheduleInterview  ScheduleType = "INTERVIEW"
	ScheduleCodingTest ScheduleType = "CODING_TEST"
	ScheduleAssignment ScheduleType = "ASSIGNMENT"
	ScheduleFollowUp   ScheduleType = "FOLLOW_UP"
	ScheduleCustom     ScheduleType = "CUSTOM"
)

func (t ScheduleType) Valid() bool {
	switch t {
	case ScheduleDocument, ScheduleInterview, ScheduleCodingTest, ScheduleAssignment, ScheduleFollowUp, ScheduleCustom:
		return true
	}
	return false
}

type Schedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint         `gorm:"not null;index" json:"user_id"`
	BookmarkID uint         `gorm:"not null;index" json:"bookmark_id"`
	Type       ScheduleType `gorm:"not null" json:"type"`
	EventDate  time.Time    `gorm:"not null;index" json:"event_date"`
	Title      string       `gorm:"not null" json:"title"`
}

type ErrorLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Source    string         `gorm:"not null;index" json:"source"`
	ErrorType string         `gorm:"not null" json:"error_type"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Metadata  map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
}
