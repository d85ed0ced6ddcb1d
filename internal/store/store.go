// Package store persists analysis results per uploaded statement.
// The analysis pipeline itself never touches storage; callers persist the
// returned records through this interface.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// ErrNotFound is returned when an analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one processed statement upload with its results.
type Analysis struct {
	ID          string                    `json:"id"`
	FileName    string                    `json:"file_name"`
	Format      domain.SourceFormat       `json:"format"`
	CreatedAt   time.Time                 `json:"created_at"`
	Memberships []domain.MembershipRecord `json:"memberships"`
	Skipped     []domain.SkippedRow       `json:"skipped"`
}

// Store defines the persistence operations used by the service layer.
type Store interface {
	CreateAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysis(ctx context.Context, id string) (*Analysis, error)
	ListAnalyses(ctx context.Context) ([]*Analysis, error)
	// ListMemberships returns all membership records across analyses,
	// newest analysis first.
	ListMemberships(ctx context.Context) ([]domain.MembershipRecord, error)
}
