package entities

import (
	"fmt"
	"strings"
	"time"
)

// SiteStatus represents the lifecycle state of a construction site
type SiteStatus int

const (
	SiteActive SiteStatus = iota
	SitePaused
	SiteCompleted
)

// String method for SiteStatus enum
func (s SiteStatus) String() string {
	switch s {
	case SiteActive:
		return "active"
	case SitePaused:
		return "paused"
	case SiteCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseSiteStatus converts the string form back into a SiteStatus
func ParseSiteStatus(s string) (SiteStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "":
		return SiteActive, nil
	case "paused":
		return SitePaused, nil
	case "completed":
		return SiteCompleted, nil
	default:
		return SiteActive, fmt.Errorf("invalid site status: %s", s)
	}
}

// Site is a construction site; every other record is scoped to one
type Site struct {
	ID        string
	Name      string
	Floors    int
	Towers    int
	OwnerID   string
	Status    SiteStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSite creates a validated Site
func NewSite(id, name string, floors, towers int, ownerID string) (*Site, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("site name cannot be empty")
	}
	if floors < 0 {
		return nil, fmt.Errorf("floors cannot be negative, got %d", floors)
	}
	if towers < 0 {
		return nil, fmt.Errorf("towers cannot be negative, got %d", towers)
	}

	now := time.Now()
	return &Site{
		ID:        id,
		Name:      name,
		Floors:    floors,
		Towers:    towers,
		OwnerID:   ownerID,
		Status:    SiteActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
