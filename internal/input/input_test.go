package input

import (
	"net/netip"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/network"
	"github.com/firefly-engineering/ipkit/internal/source"
)

func strs[T interface{ String() string }](t *testing.T, values []T) []string {
	t.Helper()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

func drain[T Value[T]](t *testing.T, in *Input[T]) ([]T, error) {
	t.Helper()
	var out []T
	for v, err := range in.All() {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func newAddrOrNet(stdin string, sources ...source.Source) *Input[network.AddrOrNet] {
	return New(network.ParseAddrOrNet, strings.NewReader(stdin), sources...)
}

func TestAll_Lazy(t *testing.T) {
	in := newAddrOrNet("  10.0.0.1  \n\n\t\n10.0.0.0/8\n", source.Arg("192.168.0.1"), source.Stdin())

	got, err := drain(t, in)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	want := []string{"192.168.0.1", "10.0.0.1", "10.0.0.0/8"}
	if !slices.Equal(strs(t, got), want) {
		t.Errorf("values = %v, want %v", strs(t, got), want)
	}
	if in.Materialized() {
		t.Error("iterating should not materialize the input")
	}
}

func TestAll_ParseErrorCarriesText(t *testing.T) {
	in := newAddrOrNet("10.0.0.1\nnot-an-ip\n10.0.0.2\n", source.Stdin())

	got, err := drain(t, in)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "not-an-ip") {
		t.Errorf("error %q should mention the offending text", err)
	}
	if code := errors.GetExitCode(err); code != errors.ExitParseError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitParseError)
	}
	if len(got) != 1 {
		t.Errorf("values before error = %d, want 1", len(got))
	}
}

func TestAll_LazyConsumedOnce(t *testing.T) {
	in := newAddrOrNet("10.0.0.1\n", source.Stdin())

	if _, err := drain(t, in); err != nil {
		t.Fatalf("first iteration failed: %v", err)
	}
	_, err := drain(t, in)
	if !errors.Is(err, errors.ErrInputConsumed) {
		t.Errorf("second iteration error = %v, want ErrInputConsumed", err)
	}
}

func TestMaterialize_SameValuesAsLazy(t *testing.T) {
	data := "10.0.0.3\n10.0.0.1\n\n10.0.0.0/24\n10.0.0.1\n"

	lazy, err := drain(t, newAddrOrNet(data, source.Stdin()))
	if err != nil {
		t.Fatalf("lazy iteration failed: %v", err)
	}

	in := newAddrOrNet(data, source.Stdin())
	if err := in.Materialize(); err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if !in.Materialized() {
		t.Fatal("Materialized() = false after Materialize")
	}
	eager, err := drain(t, in)
	if err != nil {
		t.Fatalf("materialized iteration failed: %v", err)
	}

	if !slices.Equal(lazy, eager) {
		t.Errorf("lazy %v != materialized %v", lazy, eager)
	}

	// Materialized inputs can be iterated again and Materialize is a no-op.
	if err := in.Materialize(); err != nil {
		t.Fatalf("second Materialize failed: %v", err)
	}
	again, _ := drain(t, in)
	if !slices.Equal(again, eager) {
		t.Errorf("re-iteration %v != %v", again, eager)
	}
}

func TestMaterialize_PropagatesFirstError(t *testing.T) {
	in := newAddrOrNet("10.0.0.1\nbad-1\nbad-2\n", source.Stdin())

	err := in.Sort()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "bad-1") {
		t.Errorf("error %q should name the first bad record", err)
	}
	if in.Materialized() {
		t.Error("failed materialization should not mark the input materialized")
	}
}

func TestMaterialize_MissingFile(t *testing.T) {
	in := newAddrOrNet("", source.File(filepath.Join(t.TempDir(), "missing.txt")))

	err := in.Unique()
	if code := errors.GetExitCode(err); code != errors.ExitIOError {
		t.Errorf("exit code = %d, want %d (err = %v)", code, errors.ExitIOError, err)
	}
}

func TestSortUnique_EitherOrder(t *testing.T) {
	data := "10.0.0.3\n10.0.0.0/8\n10.0.0.1\n10.0.0.3\n::1\n10.0.0.0/8\n10.0.0.1\n"
	want := []string{"10.0.0.1", "10.0.0.3", "::1", "10.0.0.0/8"}

	sortFirst := newAddrOrNet(data, source.Stdin())
	if err := sortFirst.Sort(); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if err := sortFirst.Unique(); err != nil {
		t.Fatalf("Unique failed: %v", err)
	}

	uniqueFirst := newAddrOrNet(data, source.Stdin())
	if err := uniqueFirst.Unique(); err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if err := uniqueFirst.Sort(); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	for name, in := range map[string]*Input[network.AddrOrNet]{"sort-unique": sortFirst, "unique-sort": uniqueFirst} {
		got, err := drain(t, in)
		if err != nil {
			t.Fatalf("%s: iteration failed: %v", name, err)
		}
		if !slices.Equal(strs(t, got), want) {
			t.Errorf("%s: values = %v, want %v", name, strs(t, got), want)
		}
	}
}

func TestUnique_KeepsFirstSeenOrder(t *testing.T) {
	in := newAddrOrNet("10.0.0.3\n10.0.0.1\n10.0.0.3\n10.0.0.2\n10.0.0.1\n", source.Stdin())
	if err := in.Unique(); err != nil {
		t.Fatalf("Unique failed: %v", err)
	}

	got, _ := drain(t, in)
	want := []string{"10.0.0.3", "10.0.0.1", "10.0.0.2"}
	if !slices.Equal(strs(t, got), want) {
		t.Errorf("values = %v, want %v", strs(t, got), want)
	}
}

func TestFromValues(t *testing.T) {
	in := FromValues([]network.Net{
		{Prefix: netip.MustParsePrefix("10.0.1.0/24")},
		{Prefix: netip.MustParsePrefix("10.0.0.0/24")},
		{Prefix: netip.MustParsePrefix("10.0.1.0/24")},
	})
	if !in.Materialized() {
		t.Fatal("FromValues should be materialized")
	}
	if err := in.Apply(true, true); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, _ := drain(t, in)
	want := []string{"10.0.0.0/24", "10.0.1.0/24"}
	if !slices.Equal(strs(t, got), want) {
		t.Errorf("values = %v, want %v", strs(t, got), want)
	}
}

func TestAll_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nets.txt")
	if err := os.WriteFile(path, []byte("10.0.0.0/8\n172.16.0.0/12\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	in := New(network.ParseNet, nil, source.File(path))
	got, err := drain(t, in)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if !slices.Equal(strs(t, got), []string{"10.0.0.0/8", "172.16.0.0/12"}) {
		t.Errorf("values = %v", strs(t, got))
	}
}

func TestAll_BareAddresses(t *testing.T) {
	in := New(network.ParseAddr, strings.NewReader("10.0.0.2\n10.0.0.1\n"), source.Stdin())
	if err := in.Sort(); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	got, _ := drain(t, in)
	if !slices.Equal(got, []netip.Addr{netip.MustParseAddr("10.0.0.1"), netip.MustParseAddr("10.0.0.2")}) {
		t.Errorf("values = %v", got)
	}
}
