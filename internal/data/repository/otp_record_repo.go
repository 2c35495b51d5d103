package repository

import (
	"context"
	"fmt"

	"phone-auth/internal/data/entity"
	"phone-auth/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRecordRepository interface {
	Create(ctx context.Context, record *entity.OTPRecord) error
	FindUnverifiedMatch(ctx context.Context, phone, code string) (*entity.OTPRecord, error)
	MarkVerified(ctx context.Context, id uuid.UUID) (bool, error)
}

type otpRecordRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRecordRepository(db database.PgxIface, log *zap.Logger) OTPRecordRepository {
	return &otpRecordRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp_record")),
	}
}

func (r *otpRecordRepository) Create(ctx context.Context, record *entity.OTPRecord) error {
	query := `
		INSERT INTO otp_records (id, phone, code, verified, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Phone,
		record.Code,
		record.Verified,
		record.ExpiresAt,
		record.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP record",
			zap.Error(err),
			zap.String("phone", record.Phone),
		)
		return fmt.Errorf("create OTP record for %s: %w", record.Phone, err)
	}

	return nil
}

// FindUnverifiedMatch returns the most recent live record for the
// phone/code pair, or nil when no such record exists. Older unverified
// codes stay live until they expire.
func (r *otpRecordRepository) FindUnverifiedMatch(ctx context.Context, phone, code string) (*entity.OTPRecord, error) {
	query := `
		SELECT id, phone, code, verified, expires_at, created_at
		FROM otp_records
		WHERE phone = $1
		  AND code = $2
		  AND verified = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var record entity.OTPRecord
	err := r.db.QueryRow(ctx, query, phone, code).Scan(
		&record.ID,
		&record.Phone,
		&record.Code,
		&record.Verified,
		&record.ExpiresAt,
		&record.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find unverified OTP record",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return nil, fmt.Errorf("find unverified OTP record for %s: %w", phone, err)
	}

	return &record, nil
}

// MarkVerified flips the record to verified and reports whether this call
// did the flip. The verified = false guard makes concurrent verifications
// of the same record race to a single winner.
func (r *otpRecordRepository) MarkVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE otp_records
		SET verified = true
		WHERE id = $1 AND verified = false
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark OTP record verified",
			zap.Error(err),
			zap.String("otp_record_id", id.String()),
		)
		return false, fmt.Errorf("mark OTP record %s verified: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}
