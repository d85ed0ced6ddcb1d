package classify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

type failingCategorizer struct{}

func (f *failingCategorizer) Classify(context.Context, string, []string) (domain.Category, float64, error) {
	return domain.CategoryOther, 0, errors.New("backend unavailable")
}

type fixedCategorizer struct {
	category   domain.Category
	confidence float64
}

func (f *fixedCategorizer) Classify(context.Context, string, []string) (domain.Category, float64, error) {
	return f.category, f.confidence, nil
}
