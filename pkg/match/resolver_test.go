package match

import "testing"

var customers = []string{"ალფა მარკეტი", "ბეტა შპს", "გამა დუქანი", "Alpha Co"}

func TestResolveBestExactMember(t *testing.T) {
	got, ok := ResolveBest("Alpha Co", customers, DefaultBestThreshold)
	if !ok {
		t.Fatal("exact member should resolve")
	}
	if got.Name != "Alpha Co" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Score != 100 {
		t.Errorf("exact match score = %d, want 100", got.Score)
	}
}

func TestResolveBestGeorgianExact(t *testing.T) {
	got, ok := ResolveBest("ალფა მარკეტი", customers, DefaultBestThreshold)
	if !ok {
		t.Fatal("exact Georgian member should resolve")
	}
	if got.Name != "ალფა მარკეტი" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Score != 100 {
		t.Errorf("identical Georgian strings must score 100, got %d", got.Score)
	}
}

func TestResolveShortlistGeorgianPrefix(t *testing.T) {
	got := ResolveShortlist("ალფა", customers, DefaultShortlistLimit, DefaultShortlistThreshold)
	if len(got) == 0 {
		t.Fatal("Georgian prefix term should produce a non-empty shortlist")
	}
	if got[0].Name != "ალფა მარკეტი" {
		t.Errorf("best candidate = %q, want %q", got[0].Name, "ალფა მარკეტი")
	}
}

func TestResolveBestReturnsMemberOfList(t *testing.T) {
	got, ok := ResolveBest("ალფა", customers, DefaultShortlistThreshold)
	if !ok {
		t.Fatal("approximate term should resolve at the loose threshold")
	}
	found := false
	for _, name := range customers {
		if got.Name == name {
			found = true
		}
	}
	if !found {
		t.Errorf("resolved name %q is not a list member", got.Name)
	}
}

func TestResolveBestMisses(t *testing.T) {
	if _, ok := ResolveBest("qqqqqqqq", customers, 90); ok {
		t.Error("garbage term should miss at a high threshold")
	}
	if _, ok := ResolveBest("", customers, 0); ok {
		t.Error("empty term should always miss")
	}
	if _, ok := ResolveBest("ალფა", nil, 0); ok {
		t.Error("empty list should always miss")
	}
}

func TestResolveShortlistProperties(t *testing.T) {
	limit := 2
	threshold := DefaultShortlistThreshold

	got := ResolveShortlist("ალფა", customers, limit, threshold)

	if len(got) > limit {
		t.Fatalf("shortlist length %d exceeds limit %d", len(got), limit)
	}
	for i, c := range got {
		if c.Score < threshold {
			t.Errorf("candidate %q score %d below threshold", c.Name, c.Score)
		}
		if i > 0 && got[i-1].Score < c.Score {
			t.Errorf("shortlist not sorted: %d before %d", got[i-1].Score, c.Score)
		}
	}
}

func TestResolveShortlistEmptyInputs(t *testing.T) {
	if got := ResolveShortlist("", customers, 5, 50); got != nil {
		t.Error("empty term should yield an empty shortlist")
	}
	if got := ResolveShortlist("ალფა", nil, 5, 50); got != nil {
		t.Error("empty list should yield an empty shortlist")
	}
}

func TestResolveShortlistStableTies(t *testing.T) {
	list := []string{"abxy", "abyx"}
	got := ResolveShortlist("ab", list, 5, 0)
	if len(got) != 2 {
		t.Fatalf("expected both candidates, got %d", len(got))
	}
	if got[0].Score == got[1].Score && got[0].Name != "abxy" {
		t.Errorf("equal scores must keep reference order, got %q first", got[0].Name)
	}
}

func TestNames(t *testing.T) {
	got := Names([]Candidate{{Name: "a", Score: 90}, {Name: "b", Score: 80}})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Names = %v", got)
	}
}
