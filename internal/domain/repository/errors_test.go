package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_payments_consultation_id"}

	assert.True(t, IsUniqueViolation(pgErr, "idx_payments_consultation_id"))
	// constraint matching is a case-insensitive substring check, so the
	// auto-generated names postgres gives inline UNIQUE columns match too
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "email"))
	// wrapped errors still match
	assert.True(t, IsUniqueViolation(fmt.Errorf("create payment: %w", pgErr), "idx_payments"))

	assert.False(t, IsUniqueViolation(pgErr, "idx_offers_active_per_doctor"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: "idx_payments_consultation_id"}, "idx_payments"))
	assert.False(t, IsUniqueViolation(errors.New("plain error"), "idx_payments"))
	assert.False(t, IsUniqueViolation(nil, "idx_payments"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "fk_consultations_doctor"}

	assert.True(t, IsForeignKeyViolation(pgErr, "fk_consultations_doctor"))
	assert.False(t, IsForeignKeyViolation(pgErr, "fk_offers"))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505", ConstraintName: "fk_consultations_doctor"}, "fk_consultations"))
}
