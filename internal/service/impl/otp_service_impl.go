package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
	"github.com/alfredjulianstanly/spot-feed/internal/events"
	"github.com/alfredjulianstanly/spot-feed/internal/observability/metrics"
	"github.com/alfredjulianstanly/spot-feed/internal/service"
	"github.com/alfredjulianstanly/spot-feed/internal/store"
)

const defaultOTPTTL = 10 * time.Minute

type OTPServiceImpl struct {
	Store  dataStore
	Email  service.EmailSender
	Events events.Publisher
	TTL    time.Duration

	now func() time.Time
}

func NewOTPServiceImpl(st *store.Store, email service.EmailSender, pub events.Publisher, ttl time.Duration) *OTPServiceImpl {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	if email == nil {
		email = LogEmailSender{}
	}
	return &OTPServiceImpl{
		Store:  newGormStoreAdapter(st),
		Email:  email,
		Events: pub,
		TTL:    ttl,
		now:    time.Now,
	}
}

// Issue generates a fresh 6-digit code, burns any outstanding codes in
// the same transaction, and hands the code to the email collaborator.
// A delivery failure does not unwind the issued code; the caller
// decides whether to re-issue.
func (o *OTPServiceImpl) Issue(ctx context.Context, userID uuid.UUID) error {
	user, err := o.Store.Users().GetByID(ctx, userID)
	if err != nil {
		metrics.OTPCodesTotal.WithLabelValues("issue", "error").Inc()
		return err
	}

	code, err := generateCode()
	if err != nil {
		metrics.OTPCodesTotal.WithLabelValues("issue", "error").Inc()
		return err
	}
	now := o.nowUTC()
	otp := &domain.OTPCode{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(o.TTL),
		CreatedAt: now,
	}

	err = o.Store.WithTx(ctx, func(tx storeTx) error {
		if err := tx.OTPCodes().InvalidateOutstanding(ctx, userID); err != nil {
			return err
		}
		return tx.OTPCodes().Create(ctx, otp)
	})
	if err != nil {
		metrics.OTPCodesTotal.WithLabelValues("issue", "error").Inc()
		return err
	}

	metrics.OTPCodesTotal.WithLabelValues("issue", "ok").Inc()
	if o.Email != nil {
		if err := o.Email.SendOTP(ctx, user.Email, code); err != nil {
			return fmt.Errorf("send otp email: %w", err)
		}
	}
	return nil
}

// Consume validates the code and, in one transaction, marks it used
// and flips the user to verified. Both flags are one-way transitions.
func (o *OTPServiceImpl) Consume(ctx context.Context, email, code string) error {
	code = strings.TrimSpace(code)
	if len(code) != 6 {
		metrics.OTPCodesTotal.WithLabelValues("consume", "invalid").Inc()
		return fmt.Errorf("%w: code must be 6 characters", domain.ErrValidation)
	}

	var userID uuid.UUID
	err := o.Store.WithTx(ctx, func(tx storeTx) error {
		user, err := tx.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			return err
		}
		otp, err := tx.OTPCodes().LatestUnused(ctx, user.ID, code)
		if err != nil {
			return err
		}
		if !o.nowUTC().Before(otp.ExpiresAt) {
			return fmt.Errorf("%w: otp code", domain.ErrExpired)
		}
		if err := tx.OTPCodes().MarkUsed(ctx, otp.ID); err != nil {
			return err
		}
		userID = user.ID
		return tx.Users().SetVerified(ctx, user.ID)
	})
	if err != nil {
		metrics.OTPCodesTotal.WithLabelValues("consume", "error").Inc()
		return err
	}

	metrics.OTPCodesTotal.WithLabelValues("consume", "ok").Inc()
	if o.Events != nil {
		o.Events.Publish(ctx, "user.email_verified", events.EmailVerified{
			UserID: userID.String(),
			At:     o.nowUTC(),
		})
	}
	return nil
}

// generateCode draws a 6-digit decimal code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (o *OTPServiceImpl) nowUTC() time.Time {
	if o.now != nil {
		return o.now().UTC()
	}
	return time.Now().UTC()
}
