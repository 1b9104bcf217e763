package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type JointID = uuid.UUID
type MessageID = uuid.UUID
