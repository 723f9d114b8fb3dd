package service

import (
	"context"
	"strings"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
)

// CalendarService は祝日・リソース・休暇のビジネスロジック
type CalendarService interface {
	ListHolidays(ctx context.Context, orgID string) ([]*model.Holiday, error)
	CreateHoliday(ctx context.Context, holiday *model.Holiday) error
	DeleteHoliday(ctx context.Context, orgID, id string) error

	ListResources(ctx context.Context, orgID string) ([]*model.Resource, error)
	CreateResource(ctx context.Context, resource *model.Resource) error
	DeleteResource(ctx context.Context, orgID, id string) error

	ListPTO(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error)
	CreatePTO(ctx context.Context, orgID string, entry *model.PTOEntry) error
	DeletePTO(ctx context.Context, orgID, id string) error
}

// CalendarServiceImpl は CalendarService の実装
type CalendarServiceImpl struct {
	holidayRepo  repository.HolidayRepository
	resourceRepo repository.ResourceRepository
	ptoRepo      repository.PTORepository
}

// NewCalendarService は CalendarServiceImpl を生成する
func NewCalendarService(holidayRepo repository.HolidayRepository, resourceRepo repository.ResourceRepository, ptoRepo repository.PTORepository) CalendarService {
	return &CalendarServiceImpl{holidayRepo: holidayRepo, resourceRepo: resourceRepo, ptoRepo: ptoRepo}
}

func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, orgID string) ([]*model.Holiday, error) {
	return s.holidayRepo.List(ctx, orgID)
}

// CreateHoliday は検証後に祝日を作成する
func (s *CalendarServiceImpl) CreateHoliday(ctx context.Context, holiday *model.Holiday) error {
	if err := holiday.Validate(); err != nil {
		return err
	}
	return s.holidayRepo.Create(ctx, holiday)
}

func (s *CalendarServiceImpl) DeleteHoliday(ctx context.Context, orgID, id string) error {
	return s.holidayRepo.Delete(ctx, orgID, id)
}

func (s *CalendarServiceImpl) ListResources(ctx context.Context, orgID string) ([]*model.Resource, error) {
	return s.resourceRepo.List(ctx, orgID)
}

// CreateResource はスキル名を正規化してリソースを作成する
func (s *CalendarServiceImpl) CreateResource(ctx context.Context, resource *model.Resource) error {
	if err := resource.Validate(); err != nil {
		return err
	}
	skills := make([]string, 0, len(resource.Skills))
	for _, skill := range resource.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	resource.Skills = skills
	return s.resourceRepo.Create(ctx, resource)
}

func (s *CalendarServiceImpl) DeleteResource(ctx context.Context, orgID, id string) error {
	return s.resourceRepo.Delete(ctx, orgID, id)
}

// ListPTO はリソースの休暇一覧を返す。リソースが存在しない場合は ErrNotFound
func (s *CalendarServiceImpl) ListPTO(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error) {
	if _, err := s.resourceRepo.GetByID(ctx, orgID, resourceID); err != nil {
		return nil, err
	}
	return s.ptoRepo.ListByResource(ctx, orgID, resourceID)
}

// CreatePTO は検証後に休暇を作成する
func (s *CalendarServiceImpl) CreatePTO(ctx context.Context, orgID string, entry *model.PTOEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.ptoRepo.Create(ctx, orgID, entry)
}

func (s *CalendarServiceImpl) DeletePTO(ctx context.Context, orgID, id string) error {
	return s.ptoRepo.Delete(ctx, orgID, id)
}
