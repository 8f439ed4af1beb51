package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			reply: `{"header_row_index": 1}`,
			want:  `{"header_row_index": 1}`,
			ok:    true,
		},
		{
			name:  "fenced",
			reply: "```json\n{\"ok\": true}\n```",
			want:  `{"ok": true}`,
			ok:    true,
		},
		{
			name:  "surrounded by prose",
			reply: "Вот структура таблицы:\n{\"ok\": true}\nНадеюсь, это поможет.",
			want:  `{"ok": true}`,
			ok:    true,
		},
		{
			name:  "nested braces",
			reply: `ответ: {"a": {"b": 2}} готово`,
			want:  `{"a": {"b": 2}}`,
			ok:    true,
		},
		{
			name:  "no object",
			reply: "не могу определить структуру",
			ok:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstJSONObject(tt.reply)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.JSONEq(t, tt.want, got)
			}
		})
	}
}

func TestFirstJSONArray(t *testing.T) {
	reply := "Найденные позиции:\n```json\n[{\"full_name\": \"Отвод Ду57\", \"quantity\": 10}]\n```"
	got, ok := FirstJSONArray(reply)
	require.True(t, ok)
	require.JSONEq(t, `[{"full_name": "Отвод Ду57", "quantity": 10}]`, got)
}

func TestDecodeArray(t *testing.T) {
	var items []struct {
		FullName string `json:"full_name"`
		Quantity int    `json:"quantity"`
	}
	ok := DecodeArray(`[{"full_name": "Кран Ду25", "quantity": 2}] (итого одна позиция)`, &items)
	require.True(t, ok)
	require.Len(t, items, 1)
	require.Equal(t, "Кран Ду25", items[0].FullName)
	require.Equal(t, 2, items[0].Quantity)
}

func TestDecodeObjectInvalid(t *testing.T) {
	var v struct{ OK bool }
	require.False(t, DecodeObject("{broken", &v))
}
