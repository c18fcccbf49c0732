package store

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable wraps storage backend failures (I/O errors, Redis
// connectivity). Absent entries are not errors.
var ErrStoreUnavailable = errors.New("session store unavailable")

// UserRecord is the cached user identity owned by the backend. The client
// caches it verbatim; RiskScore and other analytics fields are opaque
// server outputs.
type UserRecord struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Avatar           string    `json:"avatar,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	Location         string    `json:"location,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	University       string    `json:"university,omitempty"`
	JoinedDate       time.Time `json:"joinedDate,omitzero"`
	EnrolledCourses  []string  `json:"enrolledCourses,omitempty"`
	AssignedStudents []string  `json:"assignedStudents,omitempty"`
	TotalStudyTime   int       `json:"totalStudyTime,omitempty"`
	CompletedModules int       `json:"completedModules,omitempty"`
	RiskScore        int       `json:"riskScore,omitempty"`
}

// Clone returns a deep copy so callers can hand out records without
// aliasing the stored slices.
func (u *UserRecord) Clone() *UserRecord {
	if u == nil {
		return nil
	}
	out := *u
	if u.EnrolledCourses != nil {
		out.EnrolledCourses = append([]string(nil), u.EnrolledCourses...)
	}
	if u.AssignedStudents != nil {
		out.AssignedStudents = append([]string(nil), u.AssignedStudents...)
	}
	return &out
}

// Store is the persisted session store. Implementations must be safe for
// concurrent use.
type Store interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error

	GetUser(ctx context.Context) (*UserRecord, error)
	SetUser(ctx context.Context, user *UserRecord) error

	GetRole(ctx context.Context) (string, error)
	SetRole(ctx context.Context, role string) error

	// ClearAll removes token, user, and role together. It is idempotent.
	ClearAll(ctx context.Context) error
}

const (
	keyToken = "token"
	keyUser  = "user"
	keyRole  = "role"
)
