package models

// Announcement is a notice published by the admin. Collections of
// announcements are kept newest first.
type Announcement struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Partnership is a partner business shown to clients, in insertion order.
type Partnership struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateAnnouncementRequest DTO
type CreateAnnouncementRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePartnershipRequest DTO
type CreatePartnershipRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// AssistantRequest DTO
type AssistantRequest struct {
	Prompt string `json:"prompt"`
}
