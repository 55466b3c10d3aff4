package entities

// CallerTier classifies a caller for quota purposes. The tier is resolved
// by the surrounding application before the core is invoked.
type CallerTier string

const (
	TierAnonymous CallerTier = "anonymous"
	TierMember    CallerTier = "member"
	TierPremium   CallerTier = "premium"
)

// ParseCallerTier maps a raw tier token onto a known tier, defaulting to
// anonymous for anything unrecognized.
func ParseCallerTier(raw string) CallerTier {
	switch CallerTier(raw) {
	case TierMember:
		return TierMember
	case TierPremium:
		return TierPremium
	default:
		return TierAnonymous
	}
}
