package domain

import (
	"time"
)

type AgendaExport struct {
	URL          string    `json:"url"`
	ObjectName   string    `json:"object_name"`
	Appointments int       `json:"appointments"`
	ExpiresAt    time.Time `json:"expires_at"`
}
