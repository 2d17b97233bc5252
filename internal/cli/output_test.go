package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette(t *testing.T) {
	t.Parallel()

	off := Palette{}
	assert.Equal(t, "done", off.Green("done"))

	on := Palette{Enabled: true}
	assert.Equal(t, colorGreen+"done"+colorReset, on.Green("done"))
	assert.Equal(t, colorGray+"x"+colorReset, on.Gray("x"))
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()

	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	tbl.AddRow("ID", "TITLE")
	tbl.AddRow("a-long-id", "Website")
	tbl.AddRow("b", Palette{Enabled: true}.Green("Audit"))

	var buf bytes.Buffer
	tbl.Render(&buf)

	want := "ID         TITLE\n" +
		"a-long-id  Website\n" +
		"b          " + colorGreen + "Audit" + colorReset + "\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_MaxWidth(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	tbl.SetMaxWidth(0, 8)
	tbl.AddRow("a very long title", "x")
	tbl.AddRow("short", "y")

	var buf bytes.Buffer
	tbl.Render(&buf)

	assert.Equal(t, "a ver...  x\nshort     y\n", buf.String())
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "fits", in: "hello", max: 5, want: "hello"},
		{name: "cut with ellipsis", in: "hello world", max: 8, want: "hello..."},
		{name: "tiny limit hard cut", in: "hello", max: 2, want: "he"},
		{name: "zero", in: "hello", max: 0, want: ""},
		{name: "multibyte counted as runes", in: "héllo wörld", max: 7, want: "héll..."},
		{name: "ansi not counted", in: colorGreen + "ok" + colorReset, max: 2, want: colorGreen + "ok" + colorReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}
