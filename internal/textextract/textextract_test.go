package textextract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomerName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"own line", "2023.4.1\n山田太郎 様\nMartin D-28", "山田太郎", true},
		{"no space", "鈴木様 ご依頼", "鈴木", true},
		{"ideographic space", "佐藤　様", "佐藤", true},
		{"first line wins", "田中 様\n高橋 様", "田中", true},
		{"missing", "Martin D-28\nナット交換", "", false},
		{"honorific alone", "様", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CustomerName(tt.text)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"受付 2023.4.1 山田様", "2023.4.1", true},
		{"2019.12.31", "2019.12.31", true},
		{"2024.05.07\n2020.1.1", "2024.05.07", true},
		{"2024/05/07", "", false},
		{"23.4.1", "", false},
	}
	for _, tt := range tests {
		got, ok := Date(tt.text)
		require.Equal(t, tt.ok, ok, tt.text)
		require.Equal(t, tt.want, got, tt.text)
	}
}

func TestSerialNumber(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"Model: J-45\nSerial: 01234567\nSymptoms: x", "01234567", true},
		{"serial:   AB-99  ", "AB-99", true},
		{"SERIAL:X1", "X1", true},
		{"Model: J-45", "", false},
	}
	for _, tt := range tests {
		got, ok := SerialNumber(tt.text)
		require.Equal(t, tt.ok, ok, tt.text)
		require.Equal(t, tt.want, got, tt.text)
	}
}
