package parameter

// Level catalog
const (
	// FirstLevel is the catalog key the campaign starts from
	FirstLevel = "1.1"

	// CampaignParallelism caps worlds generated at once by a campaign
	CampaignParallelism = 4
)
