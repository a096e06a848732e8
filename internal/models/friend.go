package models

import "time"

// FriendEdge is a directed friend relationship: UserID considers FriendID a
// friend. There is no approval workflow; the edge either exists or it does
// not, and the reverse direction is independent.
type FriendEdge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friend_user_friend" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friend_user_friend" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`

	Friend Profile `gorm:"foreignKey:FriendID;references:UserID" json:"friend,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendEdge) TableName() string {
	return "friend_edges"
}
