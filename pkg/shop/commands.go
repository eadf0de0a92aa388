package shop

import "github.com/asianjeff44490-crypto/discord-bot/pkg/domain"

// Command names and control ids.
const (
	CommandShop       = "shop"
	CommandAddProduct = "addproduct"
	ControlMenu       = "product_menu"
	ControlBuy        = "buy_now"
)

// Commands lists the slash commands the shop needs registered.
func Commands() []domain.CommandSpec {
	return []domain.CommandSpec{
		{
			Name:        CommandShop,
			Description: "Show the Snowy Solutions shop panel",
			GuildOnly:   true,
		},
		{
			Name:        CommandAddProduct,
			Description: "Add a product to the shop",
			AdminOnly:   true,
			GuildOnly:   true,
			Options: []domain.CommandOption{
				{Name: "name", Description: "Product name", Type: domain.OptionString, Required: true},
				{Name: "description", Description: "Product description", Type: domain.OptionString, Required: true},
				{Name: "price", Description: "Product price", Type: domain.OptionNumber, Required: true},
			},
		},
	}
}
