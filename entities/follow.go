package entities

import (
	"github.com/google/uuid"
	"time"
)

type Follow struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_following;check:chk_follow_not_self,user_id <> following_id" json:"user_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_following;index" json:"following_id"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;autoCreateTime" json:"created_at"`

	User      *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}
