package ticket

import (
	"strings"
	"unicode"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
)

// Member is the access a ticket grants to its owner and to staff.
const Member = domain.PermissionViewChannel | domain.PermissionSendMessages

// maxChannelName is the platform's limit on channel name length.
const maxChannelName = 100

// ComputeGrants builds the access list of a ticket channel. The everyone role
// shares the guild's id and is denied visibility; the owner and every staff
// role may view and send.
func ComputeGrants(guildID, ownerID string, roles []domain.Role) domain.GrantSet {
	grants := domain.GrantSet{
		{TargetID: guildID, Target: domain.TargetRole, Deny: domain.PermissionViewChannel},
		{TargetID: ownerID, Target: domain.TargetMember, Allow: Member},
	}
	for _, role := range roles {
		if role.ID == guildID || !role.IsStaff() {
			continue
		}
		grants = append(grants, domain.Grant{TargetID: role.ID, Target: domain.TargetRole, Allow: Member})
	}
	return grants
}

// ChannelName derives the ticket channel name from the requester's handle,
// e.g. "snowy-alice". Characters the platform rejects become dashes.
func ChannelName(prefix, username string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')

	lastDash := true
	for _, r := range strings.ToLower(username) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	name := strings.TrimRight(b.String(), "-")
	if name == prefix {
		name += "-ticket"
	}
	if runes := []rune(name); len(runes) > maxChannelName {
		name = strings.TrimRight(string(runes[:maxChannelName]), "-")
	}
	return name
}

// findCategory returns the first category whose name matches, ignoring case.
func findCategory(categories []domain.Category, name string) (domain.Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return domain.Category{}, false
}
