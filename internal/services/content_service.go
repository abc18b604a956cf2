package services

import (
	"context"
	"time"

	"salon_backend/internal/models"
	"salon_backend/internal/repositories"
)

// AnnouncementService manages the notice board. New announcements go first.
type AnnouncementService interface {
	GetAnnouncements(ctx context.Context) ([]models.Announcement, error)
	AddAnnouncement(ctx context.Context, content string) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) (string, error)
}

// PartnershipService manages partner businesses, kept in insertion order.
type PartnershipService interface {
	GetPartnerships(ctx context.Context) ([]models.Partnership, error)
	AddPartnership(ctx context.Context, name, description string) (*models.Partnership, error)
	DeletePartnership(ctx context.Context, id string) (string, error)
}

type announcementService struct {
	announcements *repositories.Collection[models.Announcement]
	latency       time.Duration
}

func NewAnnouncementService(announcements *repositories.Collection[models.Announcement], latency time.Duration) AnnouncementService {
	return &announcementService{announcements: announcements, latency: latency}
}

func (s *announcementService) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.announcements.All(ctx), nil
}

func (s *announcementService) AddAnnouncement(ctx context.Context, content string) (*models.Announcement, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	an := models.Announcement{ID: newID("an_"), Content: content}
	err := s.announcements.Mutate(ctx, func(items []models.Announcement) ([]models.Announcement, error) {
		return append([]models.Announcement{an}, items...), nil
	})
	if err != nil {
		return nil, err
	}
	return &an, nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, id string) (string, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return "", err
	}
	err := s.announcements.Mutate(ctx, func(items []models.Announcement) ([]models.Announcement, error) {
		return removeByID(items, id, func(a models.Announcement) string { return a.ID }), nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

type partnershipService struct {
	partnerships *repositories.Collection[models.Partnership]
	latency      time.Duration
}

func NewPartnershipService(partnerships *repositories.Collection[models.Partnership], latency time.Duration) PartnershipService {
	return &partnershipService{partnerships: partnerships, latency: latency}
}

func (s *partnershipService) GetPartnerships(ctx context.Context) ([]models.Partnership, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.partnerships.All(ctx), nil
}

func (s *partnershipService) AddPartnership(ctx context.Context, name, description string) (*models.Partnership, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	p := models.Partnership{ID: newID("p_"), Name: name, Description: description}
	err := s.partnerships.Mutate(ctx, func(items []models.Partnership) ([]models.Partnership, error) {
		return append(items, p), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *partnershipService) DeletePartnership(ctx context.Context, id string) (string, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return "", err
	}
	err := s.partnerships.Mutate(ctx, func(items []models.Partnership) ([]models.Partnership, error) {
		return removeByID(items, id, func(p models.Partnership) string { return p.ID }), nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}
