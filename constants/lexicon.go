package constants

// Default keyword lists for the Russian plumbing-fitting domain. The extraction
// pipeline takes these through extract.Lexicon so deployments for other
// catalogs can swap them out without touching the extractors.

// HeaderKeywords score candidate header rows. One hit per cell.
var HeaderKeywords = []string{
	"наимен", "товар", "цена", "кол-во", "остаток", "артикул", "п/п",
	"номенклатур", "количеств", "price", "name", "qty",
}

// Column-role keyword families, checked against header cell text.
var (
	NameKeywords    = []string{"наимен", "товар", "номенклатур", "продукц", "изделие", "описание"}
	PriceKeywords   = []string{"цена", "стоимост", "руб", "price", "сумма"}
	StockKeywords   = []string{"остат", "кол-во", "налич", "склад", "количеств", "доступ"}
	ArticleKeywords = []string{"артикул", "код", "sku", "art"}
)

// CategoryKeywords mark group-header rows that introduce a product family.
var CategoryKeywords = []string{
	"фланцы", "отводы", "переходы", "заглушки", "тройники",
	"задвижки", "клапаны", "муфты", "краны", "редукторы",
}

// JunkPatterns reject candidate rows whose name is boilerplate rather than a
// product: bare numbers, short letter fragments, totals and signatures,
// contact info, and header-repeat text.
var JunkPatterns = []string{
	`^[\d\s\-\.\,\(\)]+$`,
	`^[а-яё\s]{1,4}$`,
	`итого|всего|сумма|подпись|печать|директор|менеджер`,
	`тел\.|факс|@|www\.|http`,
	`ул\.|просп\.|офис|этаж`,
	`^наименование$|^товар$|^цена$|^остаток$|^артикул$`,
	`остатки и доступность|параметры|количество товаров`,
	`^заявка|^прайс|^коммерческое предложение`,
}

// ServiceWords are names that are exactly a placeholder or a label fragment.
var ServiceWords = []string{
	"nan", "none", "null", "undefined", "n/a",
	"наименование", "товар", "продукт", "название", "описание",
	"итого", "всего", "сумма", "total", "sum",
	"заголовок", "header", "title", "примечание", "note", "комментарий",
	"список", "позиция", "артикул", "счет",
}

// Stock free-text classification.
var (
	UnavailableWords = []string{"нет", "отсутств", "под заказ", "ожидается", "снят"}
	AvailableWords   = []string{"есть", "в наличии", "налич", "много", "склад", "+"}
)

// QuantityUnits terminate a requested-quantity expression in free text,
// e.g. "Отвод Ду50 - 10 шт".
var QuantityUnits = []string{"шт", "штук", "компл", "ед", "м", "тонн", "кг"}
