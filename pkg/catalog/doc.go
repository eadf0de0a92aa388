// Package catalog holds the shop's product list.
package catalog
