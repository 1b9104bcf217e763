package service

import "context"

// EmailSender delivers verification codes. Delivery is an external
// collaborator's concern; implementations outside this module talk to
// a real mail provider.
type EmailSender interface {
	SendOTP(ctx context.Context, to, code string) error
}
