package prefixindex

import (
	"reflect"
	"testing"

	"github.com/riverrun/cidrd/ipv4"
)

func mustCidr(t *testing.T, s string) ipv4.Cidr {
	t.Helper()
	c, err := ipv4.ParseCidr(s)
	if err != nil {
		t.Fatalf("ParseCidr(%q): %v", s, err)
	}
	return c
}

func mustAddr(t *testing.T, s string) ipv4.Address {
	t.Helper()
	a, err := ipv4.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return a
}

func TestEmptyIndexHasIsFalse(t *testing.T) {
	idx := New()
	if idx.Has(mustCidr(t, "85.143.160.0/21")) {
		t.Error("expected has=false on an empty index")
	}
}

func TestPutThenHasAndLookup(t *testing.T) {
	idx := New()
	c := mustCidr(t, "85.143.160.0/21")
	idx.Put(c)
	if !idx.Has(c) {
		t.Fatal("expected has=true after put")
	}
	got := idx.Lookup(mustAddr(t, "85.143.160.10"))
	want := []ipv4.Cidr{c}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v", got, want)
	}
}

func TestLookupOrderingMostToLeastSpecific(t *testing.T) {
	idx := New()
	wide := mustCidr(t, "10.0.0.0/8")
	narrow := mustCidr(t, "10.1.0.0/16")
	idx.Put(wide)
	idx.Put(narrow)
	got := idx.Lookup(mustAddr(t, "10.1.2.3"))
	want := []ipv4.Cidr{narrow, wide}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup order = %v, want %v", got, want)
	}
}

func TestPutIsIdempotent(t *testing.T) {
	idx := New()
	c := mustCidr(t, "10.0.0.0/8")
	idx.Put(c)
	idx.Put(c)
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after duplicate put", idx.Len())
	}
}

func TestDelIsNoopWhenAbsent(t *testing.T) {
	idx := New()
	idx.Del(mustCidr(t, "10.0.0.0/8"))
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestPutDelRoundTrip(t *testing.T) {
	idx := New()
	c := mustCidr(t, "85.143.160.0/21")
	idx.Put(c)
	idx.Del(c)
	if idx.Has(c) {
		t.Error("expected has=false after del")
	}
}

func TestDefaultRouteNeverStored(t *testing.T) {
	idx := New()
	idx.Put(ipv4.Cidr{Network: 0, Length: 0})
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0: /0 must never be stored", idx.Len())
	}
}

func TestLookupCorrectnessAgainstManualPredicate(t *testing.T) {
	idx := New()
	cidrs := []ipv4.Cidr{
		mustCidr(t, "10.0.0.0/8"),
		mustCidr(t, "10.1.0.0/16"),
		mustCidr(t, "172.16.0.0/12"),
	}
	for _, c := range cidrs {
		idx.Put(c)
	}
	addrs := []string{"10.1.2.3", "10.2.0.1", "172.16.5.5", "8.8.8.8"}
	for _, as := range addrs {
		a := mustAddr(t, as)
		got := idx.Lookup(a)
		var want []ipv4.Cidr
		for _, c := range cidrs {
			if uint32(a)>>c.Offset() == c.ShiftedKey() {
				want = append(want, c)
			}
		}
		// both got and a from-scratch scan must agree on membership
		if len(got) != len(want) {
			t.Fatalf("Lookup(%s) = %v, want set matching %v", as, got, want)
		}
		for _, g := range got {
			found := false
			for _, w := range want {
				if g == w {
					found = true
				}
			}
			if !found {
				t.Errorf("Lookup(%s) returned unexpected %v", as, g)
			}
		}
	}
}
