package model

import "time"

// Complaint is filed by a student and handled by a warden
type Complaint struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Room        string     `json:"room"`
	BlockID     int        `json:"block_id"`
	StudentID   int        `json:"student_id"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	AssignedAt  *time.Time `json:"assigned_at"` // nil until a warden first toggles it
}

// CreateComplaintRequest is used for filing a new complaint
type CreateComplaintRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Room        string `json:"room"`
}
