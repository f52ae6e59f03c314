package identity

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

const (
	EventTypeUserCreated         = "UserCreated"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
	EventTypeUserStatusChanged   = "UserStatusChanged"
)

const AggregateTypeUser = "User"

// UserCreatedEvent is emitted when a user account is created.
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string
	Role     Role
}

// NewUserCreatedEvent creates a UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		Username:        user.Username,
		Role:            user.Role,
	}
}

// UserPasswordChangedEvent is emitted when a user's password changes.
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Username string
}

// NewUserPasswordChangedEvent creates a UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, user.ID),
		Username:        user.Username,
	}
}

// UserStatusChangedEvent is emitted on activation, deactivation, and lockout.
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Username  string
	OldStatus UserStatus
	NewStatus UserStatus
}

// NewUserStatusChangedEvent creates a UserStatusChangedEvent
func NewUserStatusChangedEvent(user *User, oldStatus, newStatus UserStatus) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID),
		Username:        user.Username,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
