package joinrequest

import "time"

// JoinRequest is a pending pool membership request keyed by user id.
type JoinRequest struct {
	PoolID      string
	UserID      string
	DisplayName string
	Username    string
	RequestedAt time.Time
}
