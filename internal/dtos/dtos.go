package dtos

import "github.com/justsurfingit/job-hub/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// PostingSummary is one row of the postings list.
type PostingSummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Deadline   string   `json:"deadline,omitempty"`
	TechStack  []string `json:"techStack"`
	HasSummary bool     `json:"hasSummary"`
}

// PostingDetail is the posting page payload.
type PostingDetail struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Company   string             `json:"company"`
	Deadline  string             `json:"deadline,omitempty"`
	Link      string             `json:"link,omitempty"`
	TechStack []string           `json:"techStack"`
	Summary   *models.JobSummary `json:"summary"`
}

type PostingCreateRequest struct {
	Title     string             `json:"title" binding:"required"`
	Company   string             `json:"company" binding:"required"`
	Deadline  string             `json:"deadline"`
	Link      string             `json:"link"`
	TechStack []string           `json:"techStack"`
	Summary   *models.JobSummary `json:"summary"`
}

type PostingExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type PostingListQuery struct {
	Keyword string `form:"keyword"`
	Tag     string `form:"tag"`
	Page    int    `form:"page"`
}

type PostingStats struct {
	Total        int              `json:"total"`
	WithSummary  int              `json:"withSummary"`
	SoonestTop3  []PostingDue     `json:"soonestTop3"`
	NoSummaryTop []PostingSummary `json:"noSummaryTop3"`
}

type PostingDue struct {
	Posting PostingSummary `json:"posting"`
	Offset  int            `json:"offset"`
	DDay    string         `json:"dday"`
}

type BookmarkCreateRequest struct {
	JobID          uint   `json:"jobId" binding:"required"`
	Status         string `json:"status"`
	Memo           string `json:"memo"`
	NextActionDate string `json:"nextActionDate"`
}

// BookmarkUpdateRequest uses pointers so omitted fields stay untouched.
type BookmarkUpdateRequest struct {
	Status         *string `json:"status"`
	Memo           *string `json:"memo"`
	NextActionDate *string `json:"nextActionDate"`
	IsNotified     *bool   `json:"isNotified"`
}

type ScheduleCreateRequest struct {
	BookmarkID uint   `json:"bookmarkId" binding:"required"`
	Type       string `json:"type" binding:"required"`
	EventDate  string `json:"eventDate" binding:"required"`
	Title      string `json:"title" binding:"required"`
}

type ScheduleListQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// StartApplicationRequest starts tracking a posting on the board.
type StartApplicationRequest struct {
	PostingID string `json:"postingId" binding:"required"`
	Status    string `json:"status"`
}

type MoveCardRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateCardRequest struct {
	Memo           *string `json:"memo"`
	NextActionDate *string `json:"nextActionDate"`
}

type QuickActionRequest struct {
	Template string `json:"template" binding:"required"`
}
