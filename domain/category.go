package domain

// AllCategories disables the category filter of the catalog.
const AllCategories = "all"

var DefaultCategories = []string{
	"Tools",
	"Books",
	"Sports Equipment",
	"Kitchen",
	"Electronics",
	"Garden",
	"Other",
}
