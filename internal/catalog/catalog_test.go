package catalog

import "testing"

func TestListSizes(t *testing.T) {
	if got := len(AdditionCategories); got != 5 {
		t.Errorf("expected 5 addition categories, got %d", got)
	}
	if got := len(ReductionCategories); got != 28 {
		t.Errorf("expected 28 reduction categories, got %d", got)
	}
	if got := len(All()); got != 33 {
		t.Errorf("expected 33 categories in union, got %d", got)
	}
}

func TestMembership(t *testing.T) {
	for _, c := range AdditionCategories {
		if !IsAddition(c) {
			t.Errorf("IsAddition(%q) = false", c)
		}
		if IsReduction(c) {
			t.Errorf("IsReduction(%q) = true for an addition label", c)
		}
		if !IsValid(c) {
			t.Errorf("IsValid(%q) = false", c)
		}
	}
	for _, c := range ReductionCategories {
		if !IsReduction(c) {
			t.Errorf("IsReduction(%q) = false", c)
		}
		if IsAddition(c) {
			t.Errorf("IsAddition(%q) = true for a reduction label", c)
		}
		if !IsValid(c) {
			t.Errorf("IsValid(%q) = false", c)
		}
	}
}

func TestUnknownAndCaseSensitive(t *testing.T) {
	for _, c := range []string{"", "Groceries", "salary", "FOOD", " Food"} {
		if IsValid(c) {
			t.Errorf("IsValid(%q) = true, want false", c)
		}
	}
}

func TestAllKeepsOrder(t *testing.T) {
	all := All()
	if all[0] != "Salary" {
		t.Errorf("expected additions first, got %q", all[0])
	}
	if all[len(AdditionCategories)] != ReductionCategories[0] {
		t.Errorf("expected reductions after additions, got %q", all[len(AdditionCategories)])
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"Salary", "Bonus"}); got != "Salary, Bonus" {
		t.Errorf("Join = %q", got)
	}
}
