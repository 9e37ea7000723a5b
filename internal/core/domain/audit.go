package domain

import "time"

// AuditEntry records one mutating back-office operation for the trail.
type AuditEntry struct {
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	Method   string    `json:"method"`
	Path     string    `json:"path"`
	Status   int       `json:"status"`
	At       time.Time `json:"at"`
}
