package domain

// Permission is a bit set of channel capabilities. The values are platform
// neutral; adapters translate them to their own flags.
type Permission uint32

const (
	PermissionViewChannel Permission = 1 << iota
	PermissionSendMessages
	PermissionManageChannels
	PermissionAdministrator
)

// Has reports whether every bit of q is set in p.
func (p Permission) Has(q Permission) bool {
	return p&q == q
}

// User is the platform identity behind an interaction.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Mention renders a user reference the chat client turns into a link.
func (u User) Mention() string {
	return "<@" + u.ID + ">"
}

// Role is a guild role together with the guild-wide permissions it grants.
type Role struct {
	ID          string
	Name        string
	Permissions Permission
}

// IsStaff reports whether the role can administer the guild or manage its channels.
func (r Role) IsStaff() bool {
	return r.Permissions.Has(PermissionAdministrator) || r.Permissions.Has(PermissionManageChannels)
}

// Category is a channel grouping container.
type Category struct {
	ID   string
	Name string
}

// Channel is a handle to a created text channel.
type Channel struct {
	ID   string
	Name string
}

// Mention renders a channel reference the chat client turns into a link.
func (c Channel) Mention() string {
	return "<#" + c.ID + ">"
}

// TargetType tells whether a grant applies to a role or to a single member.
type TargetType int

const (
	TargetRole TargetType = iota
	TargetMember
)

// Grant is one allow/deny pair on a channel.
type Grant struct {
	TargetID string
	Target   TargetType
	Allow    Permission
	Deny     Permission
}

// GrantSet is the full access list of a channel.
type GrantSet []Grant

// For returns the grant targeting id, if any.
func (g GrantSet) For(id string) (Grant, bool) {
	for _, grant := range g {
		if grant.TargetID == id {
			return grant, true
		}
	}
	return Grant{}, false
}

// ChannelSpec describes a channel to create.
type ChannelSpec struct {
	Name     string
	ParentID string
	Grants   GrantSet
}

// Ticket is a provisioned private channel for one purchase.
type Ticket struct {
	Owner   User
	Product Product
	Channel Channel
}
