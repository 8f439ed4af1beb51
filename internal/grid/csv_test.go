package grid

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"semicolons", "Задвижка;4500;12\nКран;900;3\n", ';'},
		{"commas", "name,price,stock\na,1,2\n", ','},
		{"tabs", "name\tprice\tstock\na\t1\t2\n", '\t'},
		{"empty defaults to comma", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sniffDelimiter([]byte(tt.data)))
		})
	}
}

func TestReadCSVSemicolon(t *testing.T) {
	path := writeFile(t, "price.csv", []byte("Наименование;Цена;Остаток\nЗадвижка 30ч6бр;4500;12\n"))

	r := NewReader(0, discardLogger())
	g, err := r.Read(path)
	require.NoError(t, err)

	require.Equal(t, "Задвижка 30ч6бр", g.Value(1, 0))
	require.Equal(t, "4500", g.Value(1, 1))
	require.Equal(t, "12", g.Value(1, 2))
}

func TestReadCSVWindows1251(t *testing.T) {
	utf8Data := "Наименование;Цена\nЗадвижка чугунная;4500\n"
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(utf8Data))
	require.NoError(t, err)
	path := writeFile(t, "price1251.csv", encoded)

	r := NewReader(0, discardLogger())
	g, err := r.Read(path)
	require.NoError(t, err)

	require.Equal(t, "Задвижка чугунная", g.Value(1, 0))
	require.Equal(t, "4500", g.Value(1, 1))
}

func TestReadCSVRowCap(t *testing.T) {
	var data []byte
	for i := 0; i < 50; i++ {
		data = append(data, []byte("a;1\n")...)
	}
	path := writeFile(t, "long.csv", data)

	r := NewReader(10, discardLogger())
	g, err := r.Read(path)
	require.NoError(t, err)
	require.Equal(t, 9, g.MaxRow())
}

func TestReadEmptyFileFails(t *testing.T) {
	path := writeFile(t, "empty.csv", nil)

	r := NewReader(0, discardLogger())
	_, err := r.Read(path)
	require.Error(t, err)
}

func TestReadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "data.xls", []byte("x"))

	r := NewReader(0, discardLogger())
	_, err := r.Read(path)
	require.Error(t, err)
}

func TestFromText(t *testing.T) {
	g := FromText("Отвод Ду57 - 10 шт\n\n  Кран шаровой Ду25 2 шт  \n")
	require.Equal(t, 2, g.Len())
	require.Equal(t, "Отвод Ду57 - 10 шт", g.Value(0, 0))
	require.Equal(t, "Кран шаровой Ду25 2 шт", g.Value(1, 0))
}

func TestStyled(t *testing.T) {
	require.True(t, Styled("price.xlsx"))
	require.True(t, Styled("doc.PDF"))
	require.False(t, Styled("price.csv"))
	require.False(t, Styled("note.txt"))
}
