/*
Package shop implements the storefront's interaction handlers.

  - /shop renders the catalog as a selection menu with a buy button.
  - /addproduct appends a product (administrators only).
  - Picking a menu entry records the user's selection.
  - The buy button turns the selection into a ticket channel.
*/
package shop
