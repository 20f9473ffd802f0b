package sqlinline

import (
	"regexp"
	"testing"
)

// SQLRunner refuses statements without the "--sql <uuid>" header, so every
// constant in this package must carry one, and the uuid must be unique so log
// lines point at exactly one query.
var markerLine = regexp.MustCompile(`^--sql ([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\n`)

var queries = map[string]string{
	"QInsertCampaign":               QInsertCampaign,
	"QSelectCampaignByID":           QSelectCampaignByID,
	"QListApprovedCampaigns":        QListApprovedCampaigns,
	"QListCampaignsByOwner":         QListCampaignsByOwner,
	"QUpdateCampaignStatus":         QUpdateCampaignStatus,
	"QSetCampaignCover":             QSetCampaignCover,
	"QCompleteExpiredCampaigns":     QCompleteExpiredCampaigns,
	"QInsertClub":                   QInsertClub,
	"QListVerifiedClubs":            QListVerifiedClubs,
	"QUpdateClubVerification":       QUpdateClubVerification,
	"QInsertMilestone":              QInsertMilestone,
	"QListMilestonesByCampaign":     QListMilestonesByCampaign,
	"QUpdateMilestone":              QUpdateMilestone,
	"QDeleteMilestone":              QDeleteMilestone,
	"QSelectMilestoneCampaignOwner": QSelectMilestoneCampaignOwner,
	"QAchieveFundedMilestones":      QAchieveFundedMilestones,
	"QInsertReferral":               QInsertReferral,
	"QResolveReferral":              QResolveReferral,
	"QListReferralsByCampaign":      QListReferralsByCampaign,
	"QAdminStats":                   QAdminStats,
	"QExportDonations":              QExportDonations,
	"QExportCampaigns":              QExportCampaigns,
	"QInsertUser":                   QInsertUser,
	"QSelectUserByEmail":            QSelectUserByEmail,
	"QSelectUserByID":               QSelectUserByID,
	"QSetUserRole":                  QSetUserRole,
}

func TestEveryQueryCarriesAMarker(t *testing.T) {
	seen := map[string]string{}
	for name, query := range queries {
		m := markerLine.FindStringSubmatch(query)
		if m == nil {
			t.Errorf("%s is missing the --sql marker header", name)
			continue
		}
		if prev, ok := seen[m[1]]; ok {
			t.Errorf("%s reuses the marker of %s", name, prev)
		}
		seen[m[1]] = name
	}
}
