// Package analysis clusters canonical transactions by merchant, infers
// payment frequency, and classifies merchants as recurring memberships.
package analysis

import (
	"sort"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// GroupByMerchant clusters transactions by their normalized merchant key.
// Each group's transactions are ordered by date ascending; groups are
// returned in key order for deterministic output. Built fresh per analysis
// run; nothing is persisted here.
func GroupByMerchant(txs []domain.Transaction) []domain.MerchantGroup {
	byKey := make(map[string][]domain.Transaction)
	for _, tx := range txs {
		key := tx.NormalizedMerchant
		if key == "" {
			// No usable key: fall back to per-raw-description grouping.
			key = tx.RawDescription
		}
		byKey[key] = append(byKey[key], tx)
	}

	groups := make([]domain.MerchantGroup, 0, len(byKey))
	for key, group := range byKey {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
		groups = append(groups, domain.MerchantGroup{Key: key, Transactions: group})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}
