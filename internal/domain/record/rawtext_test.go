package record_test

import (
	"testing"

	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/stretchr/testify/require"
)

func TestBuildRawText(t *testing.T) {
	in := record.CaseInput{
		Date:         "2024-05-12",
		CustomerName: "山田",
		Model:        "J-45",
		SerialNumber: "01234567",
		Symptoms:     "弦高が高い",
		WorkItems: []record.WorkItem{
			{Name: "ナット交換", Price: 8000},
			{Name: "フレット交換", Price: 40000},
		},
	}

	want := "Date: 2024-05-12\n" +
		"Customer: 山田 様\n" +
		"\n" +
		"Model: J-45\n" +
		"Serial: 01234567\n" +
		"Symptoms: 弦高が高い\n" +
		"\n" +
		"\n" +
		"Work Items:\n" +
		"- ナット交換: 8000\n" +
		"- フレット交換: 40000\n" +
		"Total: 48000"
	require.Equal(t, want, record.BuildRawText(in))
}

func TestBuildRows(t *testing.T) {
	in := validInput()
	in.WorkItems = append(in.WorkItems, record.WorkItem{Name: "調整", Price: 0})

	rows := record.BuildRows("case-1", in)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, "case-1", row.ID)
		require.Equal(t, record.DefaultCategory, row.Category)
		require.Equal(t, []string{record.DefaultCategory}, row.Categories)
		require.Equal(t, rows[0].RawText, row.RawText)
		require.Equal(t, in.CustomerName, row.CustomerName)
	}
	require.Equal(t, "ナット交換", rows[0].DetailedWork)
	require.Equal(t, int64(8800), rows[0].Price)
	require.Equal(t, "調整", rows[1].DetailedWork)
}
