// file: internals/features/users/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is one portal account: a homeowner (member) or an association
// officer (admin/manager). The billing-contact flag marks the household
// member who receives invoices and is the target of late fees.
type User struct {
	// PK
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	UserEmail    string `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:uq_user_email" json:"user_email"`
	UserFullName string `gorm:"column:user_full_name;type:varchar(120);not null" json:"user_full_name"`

	// bcrypt hash; empty for google-only accounts
	UserPasswordHash string `gorm:"column:user_password_hash;type:varchar(100);not null;default:''" json:"-"`

	// Role claims minted into the JWT at login.
	UserRoles pq.StringArray `gorm:"column:user_roles;type:text[]" json:"user_roles"`

	// HOA membership
	UserLotNumber        *string `gorm:"column:user_lot_number;type:varchar(20)" json:"user_lot_number,omitempty"`
	UserIsBillingContact bool    `gorm:"column:user_is_billing_contact;not null;default:false;index:ix_user_is_billing_contact" json:"user_is_billing_contact"`

	UserIsActive bool `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	// Timestamps
	UserCreatedAt time.Time      `gorm:"column:user_created_at;not null" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;not null" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (m *User) BeforeCreate(tx *gorm.DB) (err error) {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	now := time.Now()
	if m.UserCreatedAt.IsZero() {
		m.UserCreatedAt = now
	}
	m.UserUpdatedAt = now
	return nil
}

func (m *User) BeforeUpdate(tx *gorm.DB) (err error) {
	m.UserUpdatedAt = time.Now()
	return nil
}

func (m *User) HasRole(role string) bool {
	for _, r := range m.UserRoles {
		if r == role {
			return true
		}
	}
	return false
}
