package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/supplyline/pricelist/internal/common"
	"github.com/supplyline/pricelist/internal/grid"
)

// Level is one rung of a cascade: a named extraction strategy with the
// validated-item threshold that lets it claim the run. StyledOnly levels are
// skipped for formats with no styling signal.
type Level[T any] struct {
	Name       string
	Threshold  int
	StyledOnly bool
	Extract    func(ctx context.Context, g *grid.Grid, sink *Sink) ([]T, error)
}

// Result is the uniform outcome of a cascade run. Log is populated on both
// success and failure; Err is set only when no level produced anything.
type Result[T any] struct {
	Success     bool
	Items       []T
	FinalMethod string
	Log         []string
	Err         error
}

// Runner escalates through levels in cost order. A level claims the run by
// meeting its threshold of validated items; otherwise its output is retained
// and the next level runs. When no level meets its threshold the best
// non-empty output wins, and only a fully empty cascade fails.
type Runner[T any] struct {
	Reader *grid.Reader
	Levels []Level[T]
	Logger *slog.Logger
}

// Run reads the document at path and drives the cascade over it.
func (r *Runner[T]) Run(ctx context.Context, path string) Result[T] {
	logger := r.logger()
	sink := NewSink(logger)

	g, err := r.Reader.Read(path)
	if err != nil {
		sink.Warnf("чтение документа не удалось: %v", err)
		return Result[T]{Log: sink.Lines(), Err: err}
	}
	sink.Logf("документ прочитан: строк %d, ячеек %d", g.MaxRow()+1, g.Len())
	return r.run(ctx, g, grid.Styled(path), sink, logger)
}

// RunText drives the cascade over inline request text, one line per grid
// row. Text carries no styling signal, so styled-only levels are skipped.
func (r *Runner[T]) RunText(ctx context.Context, text string) Result[T] {
	logger := r.logger()
	sink := NewSink(logger)

	g := grid.FromText(text)
	if g.Len() == 0 {
		sink.Warnf("текст заявки пуст")
		return Result[T]{Log: sink.Lines(), Err: fmt.Errorf("%w: empty text", common.ErrInvalidInput)}
	}
	sink.Logf("текст заявки прочитан: строк %d", g.MaxRow()+1)
	return r.run(ctx, g, false, sink, logger)
}

func (r *Runner[T]) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner[T]) run(ctx context.Context, g *grid.Grid, styled bool, sink *Sink, logger *slog.Logger) Result[T] {
	bestItems := []T(nil)
	bestLevel := ""
	for _, lvl := range r.Levels {
		if lvl.StyledOnly && !styled {
			sink.Logf("%s: пропущен, формат без оформления", lvl.Name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return Result[T]{Log: sink.Lines(), Err: err}
		}

		sink.Logf("%s: запуск", lvl.Name)
		items, err := lvl.Extract(ctx, g, sink)
		if err != nil {
			sink.Warnf("%s: ошибка: %v", lvl.Name, err)
			logger.Warn("cascade.level.failed", "level", lvl.Name, "error", err)
			continue
		}
		if len(items) >= lvl.Threshold && len(items) > 0 {
			sink.Logf("%s: порог достигнут (%d >= %d), результат принят", lvl.Name, len(items), lvl.Threshold)
			return Result[T]{Success: true, Items: items, FinalMethod: lvl.Name, Log: sink.Lines()}
		}
		sink.Logf("%s: порог не достигнут (%d < %d)", lvl.Name, len(items), lvl.Threshold)
		if len(items) > len(bestItems) {
			bestItems, bestLevel = items, lvl.Name
		}
	}

	if len(bestItems) > 0 {
		method := fmt.Sprintf("Best of All: %s", bestLevel)
		sink.Logf("ни один уровень не достиг порога, выбран лучший результат: %s (%d)", bestLevel, len(bestItems))
		return Result[T]{Success: true, Items: bestItems, FinalMethod: method, Log: sink.Lines()}
	}
	sink.Warnf("все уровни исчерпаны, извлечь данные не удалось")
	return Result[T]{Log: sink.Lines(), Err: common.WrapError(common.ErrExhausted, "no level produced items")}
}
