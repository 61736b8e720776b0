// Package catalog holds the fixed category whitelists for savings
// transactions. The lists are static configuration: two disjoint ordered
// sets, one for additions and one for reductions.
package catalog

import "strings"

// AdditionCategories are the allowed labels for addition transactions.
var AdditionCategories = []string{
	"Salary", "Investments", "Part-Time", "Bonus", "Others",
}

// ReductionCategories are the allowed labels for reduction transactions.
var ReductionCategories = []string{
	"Parents", "Shopping", "Food", "Phone", "Entertainment", "Education", "Beauty",
	"Sports", "Social", "Transportations", "Clothing", "Car", "Alcohol", "Cigarettes",
	"Electronics", "Travel", "Health", "Pets", "Repairs", "Housing", "Home", "Gifts",
	"Donations", "Lottery", "Snacks", "Kids", "Vegetables", "Fruits",
}

var (
	additionSet  = toSet(AdditionCategories)
	reductionSet = toSet(ReductionCategories)
)

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// IsAddition reports whether category is a valid addition label.
func IsAddition(category string) bool {
	_, ok := additionSet[category]
	return ok
}

// IsReduction reports whether category is a valid reduction label.
func IsReduction(category string) bool {
	_, ok := reductionSet[category]
	return ok
}

// IsValid reports whether category belongs to either list.
func IsValid(category string) bool {
	return IsAddition(category) || IsReduction(category)
}

// All returns the union of both lists, additions first.
func All() []string {
	all := make([]string, 0, len(AdditionCategories)+len(ReductionCategories))
	all = append(all, AdditionCategories...)
	all = append(all, ReductionCategories...)
	return all
}

// Join renders labels as a comma separated string for error messages.
func Join(labels []string) string {
	return strings.Join(labels, ", ")
}
