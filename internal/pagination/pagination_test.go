package pagination

import "testing"

func TestBuild_MidPage(t *testing.T) {
	m := Build("/google/ads?tag=shoes&offset=30&limit=10", 30, 10, 100, 10)
	if m.Page != 3 {
		t.Fatalf("page=%d want 3", m.Page)
	}
	if m.PerPage != 10 || m.PageCount != 10 || m.TotalCount != 100 {
		t.Fatalf("counts=%d/%d/%d", m.PerPage, m.PageCount, m.TotalCount)
	}
	if m.Links.Self != "/google/ads?tag=shoes&offset=30&limit=10" {
		t.Fatalf("self=%q", m.Links.Self)
	}
	if m.Links.First != "/google/ads?tag=shoes&offset=0&limit=10" {
		t.Fatalf("first=%q", m.Links.First)
	}
	if m.Links.Previous != "/google/ads?tag=shoes&offset=20&limit=10" {
		t.Fatalf("previous=%q", m.Links.Previous)
	}
	if m.Links.Next != "/google/ads?tag=shoes&offset=40&limit=10" {
		t.Fatalf("next=%q", m.Links.Next)
	}
	if m.Links.Last != "/google/ads?tag=shoes&offset=100&limit=10" {
		t.Fatalf("last=%q", m.Links.Last)
	}
}

func TestBuild_AppendsMissingTokens(t *testing.T) {
	m := Build("/google/ads", 0, 30, 0, 0)
	want := "/google/ads?offset=0&limit=30"
	if m.Links.Self != want {
		t.Fatalf("self=%q want %q", m.Links.Self, want)
	}
	// No records, so every link stays at the only page.
	if m.Links.First != want || m.Links.Previous != want || m.Links.Next != want || m.Links.Last != want {
		t.Fatalf("links=%+v", m.Links)
	}
}

func TestBuild_AppendsAfterExistingParams(t *testing.T) {
	m := Build("/twitter/ads?tag=cars", 0, 30, 10, 10)
	if m.Links.Self != "/twitter/ads?tag=cars&offset=0&limit=30" {
		t.Fatalf("self=%q", m.Links.Self)
	}
}

func TestBuild_PreservesParamOrder(t *testing.T) {
	m := Build("/google/ads?b=2&offset=10&a=1&limit=10", 10, 10, 40, 10)
	if m.Links.First != "/google/ads?b=2&offset=0&a=1&limit=10" {
		t.Fatalf("first=%q", m.Links.First)
	}
	if m.Links.Next != "/google/ads?b=2&offset=20&a=1&limit=10" {
		t.Fatalf("next=%q", m.Links.Next)
	}
}

func TestBuild_BoundsDegradeToSelf(t *testing.T) {
	m := Build("/google/ads?offset=0&limit=10", 0, 10, 5, 5)
	if m.Links.Previous != m.Links.Self {
		t.Fatalf("previous=%q self=%q", m.Links.Previous, m.Links.Self)
	}
	if m.Links.Next != m.Links.Self {
		t.Fatalf("next=%q self=%q", m.Links.Next, m.Links.Self)
	}
}

func TestBuild_PageIsFloorOfOffsetOverLimit(t *testing.T) {
	m := Build("/google/ads?offset=25&limit=10", 25, 10, 100, 10)
	if m.Page != 2 {
		t.Fatalf("page=%d want 2", m.Page)
	}
}

func TestBuild_ZeroLimit(t *testing.T) {
	m := Build("/google/ads", 0, 0, 100, 0)
	if m.Page != 0 {
		t.Fatalf("page=%d want 0", m.Page)
	}
	if m.Links.Last != m.Links.Self {
		t.Fatalf("last=%q self=%q", m.Links.Last, m.Links.Self)
	}
}
