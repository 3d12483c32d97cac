package grouping

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/stretchr/testify/require"
)

const legacyText = "2021.3.14\n山田太郎 様\nMartin D-28\nSerial: 1234567\nブリッジ浮き"

func legacyRows() []record.WorkItemRecord {
	return []record.WorkItemRecord{
		{DetailedWork: "ブリッジ接着", Price: 15000, RawText: legacyText, Model: "D-28", Categories: []string{"ブリッジ"}},
		{DetailedWork: "弦交換", Price: 1500, RawText: legacyText, Model: "D-28", Categories: []string{"調整", "ブリッジ"}},
		{ID: "n1", DetailedWork: "ナット交換", Price: 8000, RawText: "Date: 2024.1.2\nCustomer: 鈴木 様", Date: "2024.1.2", CustomerName: "鈴木", Categories: []string{"新規登録"}},
	}
}

func TestSignature(t *testing.T) {
	require.Equal(t, "0_", Signature(""))
	require.Equal(t, "3_abc", Signature("abc"))

	long := strings.Repeat("あ", 60)
	require.Equal(t, "60_"+strings.Repeat("あ", 50), Signature(long))
}

func TestGroup_DerivesLegacyFields(t *testing.T) {
	cases := Group(legacyRows())
	require.Len(t, cases, 2)

	legacy := cases[0]
	require.Equal(t, "山田太郎", legacy.CustomerName)
	require.Equal(t, "2021.3.14", legacy.Date)
	require.Equal(t, "1234567", legacy.SerialNumber)
	require.False(t, legacy.IsNewEntry)
	require.Equal(t, []string{"ブリッジ", "調整"}, legacy.Categories)
	require.Equal(t, []record.WorkItem{{Name: "ブリッジ接着", Price: 15000}, {Name: "弦交換", Price: 1500}}, legacy.WorkItems)
	require.Equal(t, int64(16500), legacy.TotalPrice)

	entered := cases[1]
	require.Equal(t, "n1", entered.ID)
	require.Equal(t, "鈴木", entered.CustomerName)
	require.True(t, entered.IsNewEntry)
	require.Equal(t, int64(8000), entered.TotalPrice)
}

func TestGroup_UnknownFields(t *testing.T) {
	cases := Group([]record.WorkItemRecord{{DetailedWork: "調整", RawText: "no metadata here"}})
	require.Len(t, cases, 1)
	require.Equal(t, record.UnknownValue, cases[0].CustomerName)
	require.Equal(t, record.UnknownValue, cases[0].Date)
	require.Equal(t, "", cases[0].SerialNumber)
}

func TestGroup_CaseTotalOverride(t *testing.T) {
	rows := []record.WorkItemRecord{
		{DetailedWork: "フレット交換", Price: 40000, RawText: "legacy"},
		{DetailedWork: "ナット交換", Price: 8000, RawText: "legacy", CaseTotalPrice: 52800},
		{DetailedWork: "弦", Price: 0, RawText: "legacy"},
	}
	cases := Group(rows)
	require.Len(t, cases, 1)
	require.Equal(t, int64(52800), cases[0].TotalPrice)
}

func TestGroup_CaseTotalFallbackToSum(t *testing.T) {
	rows := []record.WorkItemRecord{
		{DetailedWork: "フレット交換", Price: 40000, RawText: "legacy"},
		{DetailedWork: "ナット交換", Price: 8000, RawText: "legacy"},
	}
	cases := Group(rows)
	require.Len(t, cases, 1)
	require.Equal(t, int64(48000), cases[0].TotalPrice)
}

func TestGroup_SharedIDJoinsDifferentText(t *testing.T) {
	rows := []record.WorkItemRecord{
		{ID: "a", DetailedWork: "one", RawText: "text one"},
		{ID: "b", DetailedWork: "two", RawText: "text two"},
		{ID: "a", DetailedWork: "three", RawText: "text three"},
	}
	cases := Group(rows)
	require.Len(t, cases, 2)
	require.Equal(t, "a", cases[0].ID)
	require.Len(t, cases[0].WorkItems, 2)
}

// membership reduces cases to sorted work-item name sets so that groupings of
// permuted input can be compared.
func membership(cases []record.Case) []string {
	var out []string
	for _, c := range cases {
		names := make([]string, 0, len(c.WorkItems))
		for _, w := range c.WorkItems {
			names = append(names, w.Name)
		}
		sort.Strings(names)
		out = append(out, strings.Join(names, ","))
	}
	sort.Strings(out)
	return out
}

func TestGroup_StableUnderPermutation(t *testing.T) {
	rows := []record.WorkItemRecord{
		{ID: "x", DetailedWork: "a", RawText: "t1"},
		{ID: "y", DetailedWork: "b", RawText: "t1"},
		{ID: "y", DetailedWork: "c", RawText: "t2"},
		{DetailedWork: "d", RawText: "t3"},
		{DetailedWork: "e", RawText: "t3"},
		{ID: "z", DetailedWork: "f", RawText: "t4"},
	}
	want := membership(Group(rows))
	require.Equal(t, []string{"a,b,c", "d,e", "f"}, want)

	permutations := [][]int{
		{5, 4, 3, 2, 1, 0},
		{2, 0, 4, 1, 5, 3},
		{3, 2, 5, 0, 4, 1},
	}
	for _, perm := range permutations {
		shuffled := make([]record.WorkItemRecord, len(rows))
		for i, j := range perm {
			shuffled[i] = rows[j]
		}
		if diff := cmp.Diff(want, membership(Group(shuffled))); diff != "" {
			t.Errorf("grouping changed under permutation %v (-want +got):\n%s", perm, diff)
		}
	}
}

func TestGroup_Idempotent(t *testing.T) {
	rows := legacyRows()
	first := Group(rows)
	second := Group(rows)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("regrouping differs (-first +second):\n%s", diff)
	}
}
