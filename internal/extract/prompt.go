package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supplyline/pricelist/internal/grid"
)

// Prompt builders for the model-assisted levels. The prompts are in Russian
// because the documents are; each one pins the exact JSON shape expected back
// and forbids surrounding prose, which the lenient decoder still tolerates.

// ColumnMapPrompt asks for the structural description of a sampled sheet.
// The worked example shows a sheet with a group-header row so the model
// learns that single-cell rows are sections, not data.
func ColumnMapPrompt(sample string) string {
	var b strings.Builder
	b.WriteString("Ты анализируешь структуру прайс-листа поставщика трубопроводной арматуры.\n")
	b.WriteString("Ниже приведены строки таблицы в формате «номер_строки: ячейка | ячейка | ...».\n")
	b.WriteString("Определи структуру и верни СТРОГО один JSON-объект без пояснений:\n")
	b.WriteString(`{"header_row_index": <int>, "data_start_row_index": <int>, "name_parts_col_indices": [<int>, ...], "price_col_index": <int или null>, "stock_col_index": <int или null>}` + "\n\n")
	b.WriteString("Правила:\n")
	b.WriteString("- header_row_index: строка с подписями колонок (Наименование, Цена, Остаток и т.п.).\n")
	b.WriteString("- data_start_row_index: первая строка с товаром, строго больше header_row_index.\n")
	b.WriteString("- name_parts_col_indices: все колонки, из которых складывается полное наименование (например название + Ду + ГОСТ).\n")
	b.WriteString("- Строки, где заполнена только одна ячейка, являются заголовками разделов, а не товарами.\n\n")
	b.WriteString("Пример. Для таблицы\n")
	b.WriteString("0: Прайс-лист ООО Арматура |  | \n")
	b.WriteString("1: Наименование | Ду | Цена, руб | Остаток\n")
	b.WriteString("2: Задвижки чугунные |  | \n")
	b.WriteString("3: Задвижка 30ч6бр | 50 | 4500 | 12\n")
	b.WriteString("ответ:\n")
	b.WriteString(`{"header_row_index": 1, "data_start_row_index": 2, "name_parts_col_indices": [0, 1], "price_col_index": 2, "stock_col_index": 3}` + "\n\n")
	b.WriteString("Таблица:\n")
	b.WriteString(sample)
	return b.String()
}

// AuditPrompt asks for a verdict on an already-parsed column map applied to
// the same sample. The reply is {"ok": bool, "reason": string}.
func AuditPrompt(sample string, m *ColumnMap) string {
	mapJSON, _ := json.Marshal(m)
	var b strings.Builder
	b.WriteString("Проверь, корректно ли описана структура прайс-листа.\n")
	b.WriteString("Структура: ")
	b.Write(mapJSON)
	b.WriteString("\nТаблица:\n")
	b.WriteString(sample)
	b.WriteString("\nВерни СТРОГО один JSON-объект: {\"ok\": true/false, \"reason\": \"краткое объяснение\"}")
	return b.String()
}

// SpatialProductsPrompt carries the full annotated grid for the one-shot
// Level 1 extraction of a price list.
func SpatialProductsPrompt(cellsJSON []byte) string {
	var b strings.Builder
	b.WriteString("Ты извлекаешь товары из прайс-листа поставщика трубопроводной арматуры.\n")
	b.WriteString("Ниже полная таблица в виде списка ячеек с координатами; is_bold и is_merged помогают отличить заголовки разделов.\n")
	b.WriteString("Собери полное наименование каждого товара, включая раздел, к которому он относится.\n")
	b.WriteString("Пропусти итоги, подписи, контакты и прочий служебный текст.\n")
	b.WriteString("Верни СТРОГО JSON-массив объектов вида\n")
	b.WriteString(`[{"full_name": "...", "price": "...", "stock": "..."}]` + "\n")
	b.WriteString("без каких-либо пояснений до или после.\n\nЯчейки:\n")
	b.Write(cellsJSON)
	return b.String()
}

// SpatialItemsPrompt is the client-request variant of the one-shot prompt.
func SpatialItemsPrompt(cellsJSON []byte) string {
	var b strings.Builder
	b.WriteString("Ты извлекаешь позиции из заявки клиента на трубопроводную арматуру.\n")
	b.WriteString("Ниже таблица в виде списка ячеек с координатами.\n")
	b.WriteString("Для каждой позиции определи наименование и количество (если не указано, считай 1).\n")
	b.WriteString("Верни СТРОГО JSON-массив объектов вида\n")
	b.WriteString(`[{"full_name": "...", "quantity": 1}]` + "\n")
	b.WriteString("без пояснений.\n\nЯчейки:\n")
	b.Write(cellsJSON)
	return b.String()
}

// TextItemsPrompt extracts request positions from sampled plain rows, used
// by Level 2 of the client-request cascade.
func TextItemsPrompt(sample string) string {
	var b strings.Builder
	b.WriteString("Ниже текст заявки клиента на трубопроводную арматуру, по одной строке таблицы на строку текста.\n")
	b.WriteString("Выдели позиции заявки: наименование и количество (если количество не указано, считай 1).\n")
	b.WriteString("Игнорируй заголовки, цены и служебный текст.\n")
	b.WriteString("Верни СТРОГО JSON-массив объектов вида\n")
	b.WriteString(`[{"full_name": "...", "quantity": 1}]` + "\n")
	b.WriteString("без пояснений.\n\nТекст:\n")
	b.WriteString(sample)
	return b.String()
}

// RenderRows serializes grid rows as "index: v | v | v" lines for the
// structural prompts.
func RenderRows(g *grid.Grid, rows []int) string {
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%d:", row)
		cells := g.Row(row)
		maxCol := 0
		for _, c := range cells {
			if c.Col > maxCol {
				maxCol = c.Col
			}
		}
		for col := 0; col <= maxCol; col++ {
			b.WriteString(" ")
			b.WriteString(strings.ReplaceAll(g.Value(row, col), "\n", " "))
			if col < maxCol {
				b.WriteString(" |")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
