// Package domain contains entities without logic, just meta-data.
package domain

type (
	UserID string
	Role   string
)

const (
	RoleInterviewer Role = "interviewer"
	RoleInterviewee Role = "interviewee"
)

// Identity is whatever a client claims about itself in a join payload.
// Claims are issued upstream (auth service) and are not re-verified here,
// so Role is kept as an open string rather than an enforced enum.
type Identity struct {
	UserID   UserID `json:"userId"`
	Username string `json:"userName"`
	Role     Role   `json:"role"`
}
