package appraisal

import (
	"context"

	"github.com/google/uuid"
)

func (s *Service) CreateTemplate(ctx context.Context, input TemplateInput) (Template, error) {
	if err := ValidateCriteriaWeights(input.Criteria); err != nil {
		return Template{}, err
	}

	now := s.clock.Now()
	tmpl := Template{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Description:   input.Description,
		Criteria:      input.Criteria,
		DepartmentIDs: normalizeIDs(input.DepartmentIDs),
		PositionIDs:   normalizeIDs(input.PositionIDs),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.InsertTemplate(ctx, tmpl); err != nil {
		return Template{}, err
	}
	return tmpl, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.store.ListTemplates(ctx)
}

func (s *Service) GetTemplate(ctx context.Context, id string) (Template, error) {
	return s.store.GetTemplate(ctx, id)
}

// UpdateTemplate merges the patch into the stored template. The weight
// invariant is re-checked only when the patch carries criteria.
func (s *Service) UpdateTemplate(ctx context.Context, id string, patch TemplatePatch) (Template, error) {
	tmpl, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return Template{}, err
	}

	if patch.Name != nil {
		tmpl.Name = *patch.Name
	}
	if patch.Description != nil {
		tmpl.Description = *patch.Description
	}
	if patch.Criteria != nil {
		if err := ValidateCriteriaWeights(patch.Criteria); err != nil {
			return Template{}, err
		}
		tmpl.Criteria = patch.Criteria
	}
	if patch.DepartmentIDs != nil {
		tmpl.DepartmentIDs = patch.DepartmentIDs
	}
	if patch.PositionIDs != nil {
		tmpl.PositionIDs = patch.PositionIDs
	}
	tmpl.UpdatedAt = s.clock.Now()

	if err := s.store.UpdateTemplate(ctx, tmpl); err != nil {
		return Template{}, err
	}
	return tmpl, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.store.DeleteTemplate(ctx, id)
}

func normalizeIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
