package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "eduhub/internal/errors"
	"eduhub/internal/model"
	"eduhub/internal/repository"
)

type slotWindow struct {
	start string
	end   string
}

var morningSlots = []slotWindow{
	{"09:00", "10:00"},
	{"10:00", "11:00"},
	{"11:00", "12:00"},
}

var afternoonSlots = []slotWindow{
	{"15:00", "16:00"},
	{"16:00", "17:00"},
	{"17:00", "18:00"},
}

// dailyTemplate returns the slot windows for a consultant's presence.
// "Online" consultants work full-time (morning + afternoon); every
// other value means part-time (morning only).
func dailyTemplate(presence string) []slotWindow {
	if presence == model.PresenceOnline {
		return append(append([]slotWindow{}, morningSlots...), afternoonSlots...)
	}
	return morningSlots
}

// SlotService generates and lists consultant time slots.
type SlotService interface {
	Generate(ctx context.Context, consultantID *uint, numWeeks int, startDate *time.Time) (int, error)
	ListAvailable(ctx context.Context, consultantID uint, date *time.Time) ([]model.TimeSlot, error)
}

type slotService struct {
	userRepo repository.UserRepository
	slotRepo repository.SlotRepository
	// now lets tests pin the default start date
	now func() time.Time
}

// NewSlotService creates a new slot service.
func NewSlotService(userRepo repository.UserRepository, slotRepo repository.SlotRepository) SlotService {
	return &slotService{
		userRepo: userRepo,
		slotRepo: slotRepo,
		now:      time.Now,
	}
}

type generationTarget struct {
	consultantID uint
	presence     string
}

// Generate creates the weekly slot template for one or all consultants,
// skipping slots that already exist, and returns the number of new rows.
//
// The loop runs exactly numWeeks*5 single-day steps. Weekend days are
// skipped but still consume a step, so a start date late in the week
// yields fewer than five generated weekdays for that week. Deliberately
// kept; changing it alters published schedules.
func (s *slotService) Generate(ctx context.Context, consultantID *uint, numWeeks int, startDate *time.Time) (int, error) {
	start := s.now()
	if startDate != nil {
		start = *startDate
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	targets, err := s.resolveTargets(ctx, consultantID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, target := range targets {
		dailySlots := dailyTemplate(target.presence)

		current := start
		for i := 0; i < numWeeks*5; i++ {
			if current.Weekday() == time.Saturday || current.Weekday() == time.Sunday {
				current = current.AddDate(0, 0, 1)
				continue
			}

			for _, window := range dailySlots {
				exists, err := s.slotRepo.Exists(ctx, target.consultantID, current, window.start, window.end)
				if err != nil {
					return created, fmt.Errorf("check existing slot: %w", err)
				}
				if exists {
					continue
				}
				slot := &model.TimeSlot{
					ConsultantID: target.consultantID,
					Date:         current,
					StartTime:    window.start,
					EndTime:      window.end,
					IsAvailable:  true,
				}
				if err := s.slotRepo.Create(ctx, slot); err != nil {
					return created, fmt.Errorf("create slot: %w", err)
				}
				created++
			}

			current = current.AddDate(0, 0, 1)
		}
	}

	return created, nil
}

func (s *slotService) resolveTargets(ctx context.Context, consultantID *uint) ([]generationTarget, error) {
	if consultantID != nil {
		_, profile, err := s.userRepo.FindConsultant(ctx, *consultantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrConsultantNotFound
			}
			return nil, fmt.Errorf("find consultant: %w", err)
		}
		return []generationTarget{{consultantID: *consultantID, presence: profile.Presence}}, nil
	}

	consultants, err := s.userRepo.ListConsultants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}
	targets := make([]generationTarget, 0, len(consultants))
	for _, c := range consultants {
		targets = append(targets, generationTarget{consultantID: c.ID, presence: c.Presence})
	}
	return targets, nil
}

// ListAvailable lists a consultant's open slots, optionally filtered to
// one date.
func (s *slotService) ListAvailable(ctx context.Context, consultantID uint, date *time.Time) ([]model.TimeSlot, error) {
	if _, _, err := s.userRepo.FindConsultant(ctx, consultantID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrConsultantNotFound
		}
		return nil, fmt.Errorf("find consultant: %w", err)
	}
	return s.slotRepo.ListAvailable(ctx, consultantID, date)
}
