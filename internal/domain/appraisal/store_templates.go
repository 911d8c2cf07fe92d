package appraisal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertTemplate(ctx context.Context, tmpl Template) error {
	criteriaJSON, err := json.Marshal(tmpl.Criteria)
	if err != nil {
		return err
	}
	_, err = s.q(ctx).Exec(ctx, `
    INSERT INTO appraisal_templates (id, name, description, criteria_json, department_ids, position_ids, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, tmpl.ID, tmpl.Name, tmpl.Description, criteriaJSON, tmpl.DepartmentIDs, tmpl.PositionIDs, tmpl.CreatedAt, tmpl.UpdatedAt)
	return err
}

func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.q(ctx).Query(ctx, `
    SELECT id, name, description, criteria_json, department_ids, position_ids, created_at, updated_at
    FROM appraisal_templates
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, rows.Err()
}

func (s *Store) GetTemplate(ctx context.Context, id string) (Template, error) {
	row := s.q(ctx).QueryRow(ctx, `
    SELECT id, name, description, criteria_json, department_ids, position_ids, created_at, updated_at
    FROM appraisal_templates
    WHERE id = $1
  `, id)
	tmpl, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrTemplateNotFound
	}
	return tmpl, err
}

func (s *Store) UpdateTemplate(ctx context.Context, tmpl Template) error {
	criteriaJSON, err := json.Marshal(tmpl.Criteria)
	if err != nil {
		return err
	}
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_templates
    SET name = $1, description = $2, criteria_json = $3, department_ids = $4, position_ids = $5, updated_at = $6
    WHERE id = $7
  `, tmpl.Name, tmpl.Description, criteriaJSON, tmpl.DepartmentIDs, tmpl.PositionIDs, tmpl.UpdatedAt, tmpl.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := s.q(ctx).Exec(ctx, "DELETE FROM appraisal_templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (Template, error) {
	var tmpl Template
	var criteriaJSON []byte
	if err := row.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Description, &criteriaJSON, &tmpl.DepartmentIDs, &tmpl.PositionIDs, &tmpl.CreatedAt, &tmpl.UpdatedAt); err != nil {
		return Template{}, err
	}
	if err := json.Unmarshal(criteriaJSON, &tmpl.Criteria); err != nil {
		tmpl.Criteria = nil
	}
	return tmpl, nil
}
