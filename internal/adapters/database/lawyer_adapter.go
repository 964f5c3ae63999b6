package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

const lawyersTable = "lawyers"

var lawyerColumns = []interface{}{
	"id", "name", "specialty", "city", "bio", "license_no",
	"rating", "consult_count", "is_active", "created_at", "updated_at",
}

// LawyerAdapter implements the LawyerRepository interface
type LawyerAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLawyerAdapter creates a new lawyer adapter
func NewLawyerAdapter(client *postgres.Client) repositories.LawyerRepository {
	return &LawyerAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new lawyer profile
func (a *LawyerAdapter) Create(ctx context.Context, lawyer *entities.Lawyer) error {
	record := goqu.Record{
		"id":            lawyer.ID,
		"name":          lawyer.Name,
		"specialty":     lawyer.Specialty,
		"city":          lawyer.City,
		"bio":           sql.NullString{String: lawyer.Bio, Valid: lawyer.Bio != ""},
		"license_no":    sql.NullString{String: lawyer.LicenseNo, Valid: lawyer.LicenseNo != ""},
		"rating":        lawyer.Rating,
		"consult_count": lawyer.ConsultCount,
		"is_active":     lawyer.IsActive,
		"created_at":    lawyer.CreatedAt,
		"updated_at":    lawyer.UpdatedAt,
	}

	query, args, err := a.db.Insert(lawyersTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build lawyer insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create lawyer", err)
	}
	return nil
}

// GetByID retrieves a lawyer by ID
func (a *LawyerAdapter) GetByID(ctx context.Context, id string) (*entities.Lawyer, error) {
	query, args, err := a.db.Select(lawyerColumns...).
		From(lawyersTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build lawyer query", err)
	}

	lawyer := &entities.Lawyer{}
	err = scanLawyer(a.client.DB().QueryRowContext(ctx, query, args...), lawyer)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lawyer with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get lawyer", err)
	}
	return lawyer, nil
}

// Update updates a lawyer profile
func (a *LawyerAdapter) Update(ctx context.Context, lawyer *entities.Lawyer) error {
	lawyer.UpdatedAt = time.Now()

	query, args, err := a.db.Update(lawyersTable).
		Set(goqu.Record{
			"name":          lawyer.Name,
			"specialty":     lawyer.Specialty,
			"city":          lawyer.City,
			"bio":           sql.NullString{String: lawyer.Bio, Valid: lawyer.Bio != ""},
			"license_no":    sql.NullString{String: lawyer.LicenseNo, Valid: lawyer.LicenseNo != ""},
			"rating":        lawyer.Rating,
			"consult_count": lawyer.ConsultCount,
			"is_active":     lawyer.IsActive,
			"updated_at":    lawyer.UpdatedAt,
		}).
		Where(goqu.Ex{"id": lawyer.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build lawyer update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update lawyer", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("lawyer with id %s not found", lawyer.ID))
	}
	return nil
}

// List retrieves lawyers matching the filter
func (a *LawyerAdapter) List(ctx context.Context, filter repositories.LawyerFilter) ([]*entities.Lawyer, error) {
	ds := a.db.Select(lawyerColumns...).From(lawyersTable)

	if filter.Specialty != "" {
		ds = ds.Where(goqu.Ex{"specialty": filter.Specialty})
	}
	if filter.City != "" {
		ds = ds.Where(goqu.Ex{"city": filter.City})
	}
	if filter.ActiveOnly {
		ds = ds.Where(goqu.Ex{"is_active": true})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 30
	}
	ds = ds.Order(goqu.C("rating").Desc()).Limit(uint(limit)).Offset(uint(filter.Offset))

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build lawyer list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list lawyers", err)
	}
	defer rows.Close()

	var lawyers []*entities.Lawyer
	for rows.Next() {
		lawyer := &entities.Lawyer{}
		if err := scanLawyer(rows, lawyer); err != nil {
			return nil, apperrors.NewInternalError("failed to scan lawyer", err)
		}
		lawyers = append(lawyers, lawyer)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read lawyer rows", err)
	}
	return lawyers, nil
}

func scanLawyer(row rowScanner, lawyer *entities.Lawyer) error {
	var bio, licenseNo sql.NullString
	err := row.Scan(
		&lawyer.ID,
		&lawyer.Name,
		&lawyer.Specialty,
		&lawyer.City,
		&bio,
		&licenseNo,
		&lawyer.Rating,
		&lawyer.ConsultCount,
		&lawyer.IsActive,
		&lawyer.CreatedAt,
		&lawyer.UpdatedAt,
	)
	if err != nil {
		return err
	}
	lawyer.Bio = bio.String
	lawyer.LicenseNo = licenseNo.String
	return nil
}
