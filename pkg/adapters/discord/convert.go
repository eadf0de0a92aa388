package discord

import (
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

var permissionFlags = []struct {
	flag   domain.Permission
	native int64
}{
	{domain.PermissionViewChannel, discordgo.PermissionViewChannel},
	{domain.PermissionSendMessages, discordgo.PermissionSendMessages},
	{domain.PermissionManageChannels, discordgo.PermissionManageChannels},
	{domain.PermissionAdministrator, discordgo.PermissionAdministrator},
}

func toPlatformPermissions(p domain.Permission) int64 {
	var out int64
	for _, f := range permissionFlags {
		if p.Has(f.flag) {
			out |= f.native
		}
	}
	return out
}

func fromPlatformPermissions(p int64) domain.Permission {
	var out domain.Permission
	for _, f := range permissionFlags {
		if p&f.native == f.native {
			out |= f.flag
		}
	}
	return out
}

// toInteraction maps a gateway event to a domain interaction. The bool is
// false for interaction types the shop does not handle.
func toInteraction(i *discordgo.Interaction) (domain.Interaction, bool) {
	in := domain.Interaction{
		ID:      i.ID,
		Token:   i.Token,
		Actor:   actor(i),
		Context: domain.Context{GuildID: i.GuildID, ChannelID: i.ChannelID},
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		in.Kind = domain.KindCommand
		in.Target = data.Name
		in.Options = make(map[string]any, len(data.Options))
		for _, opt := range data.Options {
			in.Options[opt.Name] = opt.Value
		}

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		in.Target = data.CustomID
		switch data.ComponentType {
		case discordgo.ButtonComponent:
			in.Kind = domain.KindButton
		case discordgo.SelectMenuComponent:
			in.Kind = domain.KindChoice
			if len(data.Values) > 0 {
				in.Value = data.Values[0]
			}
		default:
			return domain.Interaction{}, false
		}

	default:
		return domain.Interaction{}, false
	}
	return in, true
}

func actor(i *discordgo.Interaction) domain.User {
	u := i.User
	if i.Member != nil && i.Member.User != nil {
		u = i.Member.User
	}
	if u == nil {
		return domain.User{}
	}
	return domain.User{ID: u.ID, Username: u.Username}
}

var buttonStyles = map[domain.ButtonStyle]discordgo.ButtonStyle{
	domain.ButtonPrimary:   discordgo.PrimaryButton,
	domain.ButtonSecondary: discordgo.SecondaryButton,
	domain.ButtonSuccess:   discordgo.SuccessButton,
	domain.ButtonDanger:    discordgo.DangerButton,
}

func toResponseData(resp domain.Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{Content: resp.Content}
	if resp.Private {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	for _, e := range resp.Embeds {
		data.Embeds = append(data.Embeds, &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			Color:       e.Color,
		})
	}

	if resp.Menu != nil {
		menu := discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    resp.Menu.ControlID,
			Placeholder: resp.Menu.Placeholder,
		}
		for _, o := range resp.Menu.Options {
			menu.Options = append(menu.Options, discordgo.SelectMenuOption{
				Label:       o.Label,
				Value:       o.Value,
				Description: o.Description,
			})
		}
		data.Components = append(data.Components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{menu},
		})
	}

	if len(resp.Buttons) > 0 {
		row := discordgo.ActionsRow{}
		for _, b := range resp.Buttons {
			row.Components = append(row.Components, discordgo.Button{
				CustomID: b.ControlID,
				Label:    b.Label,
				Style:    buttonStyles[b.Style],
			})
		}
		data.Components = append(data.Components, row)
	}
	return data
}

func toOverwrites(grants domain.GrantSet) []*discordgo.PermissionOverwrite {
	out := make([]*discordgo.PermissionOverwrite, 0, len(grants))
	for _, g := range grants {
		typ := discordgo.PermissionOverwriteTypeRole
		if g.Target == domain.TargetMember {
			typ = discordgo.PermissionOverwriteTypeMember
		}
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    g.TargetID,
			Type:  typ,
			Allow: toPlatformPermissions(g.Allow),
			Deny:  toPlatformPermissions(g.Deny),
		})
	}
	return out
}

func toCommands(specs []domain.CommandSpec) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(specs))
	for _, spec := range specs {
		cmd := &discordgo.ApplicationCommand{
			Name:        spec.Name,
			Description: spec.Description,
		}
		if spec.AdminOnly {
			perm := int64(discordgo.PermissionAdministrator)
			cmd.DefaultMemberPermissions = &perm
		}
		if spec.GuildOnly {
			dm := false
			cmd.DMPermission = &dm
		}
		for _, o := range spec.Options {
			typ := discordgo.ApplicationCommandOptionString
			if o.Type == domain.OptionNumber {
				typ = discordgo.ApplicationCommandOptionNumber
			}
			cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
				Type:        typ,
				Name:        o.Name,
				Description: o.Description,
				Required:    o.Required,
			})
		}
		out = append(out, cmd)
	}
	return out
}

// toWebhookEdit renders a response as an edit of a deferred reply. Visibility
// was fixed when the interaction was deferred.
func toWebhookEdit(resp domain.Response) *discordgo.WebhookEdit {
	data := toResponseData(resp)
	edit := &discordgo.WebhookEdit{Content: &data.Content}
	if len(data.Embeds) > 0 {
		edit.Embeds = &data.Embeds
	}
	if len(data.Components) > 0 {
		edit.Components = &data.Components
	}
	return edit
}
