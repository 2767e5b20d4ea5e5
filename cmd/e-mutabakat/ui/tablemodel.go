//go:build windows

package ui

import (
	"fmt"
	"sort"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/app"
	"github.com/lxn/walk"
)

type FileListModel struct {
	walk.TableModelBase
	walk.SorterBase
	sortColumn int
	sortOrder  walk.SortOrder
	items      []app.FileRow
}

// Called by the TableView to sort the model.
func (m *FileListModel) Sort(col int, order walk.SortOrder) error {
	m.sortColumn, m.sortOrder = col, order

	sortFuncs := []func(a, b app.FileRow) bool{
		func(a, b app.FileRow) bool {
			return a.Name < b.Name
		},
		func(a, b app.FileRow) bool {
			return a.Bytes < b.Bytes
		},
		func(a, b app.FileRow) bool {
			return a.Uploaded < b.Uploaded
		},
	}

	sort.SliceStable(m.items, func(i, j int) bool {
		a, b := m.items[i], m.items[j]

		c := func(ls bool) bool {
			if m.sortOrder == walk.SortAscending {
				return ls
			}
			return !ls
		}
		if m.sortColumn < len(sortFuncs) {
			return c(sortFuncs[m.sortColumn](a, b))
		}
		panic(fmt.Sprintf("sort function missing for column %v", m.sortColumn))
	})

	return m.SorterBase.Sort(col, order)
}

// Replace swaps in a freshly rendered list, keeping the current sort order.
func (m *FileListModel) Replace(rows []app.FileRow) {
	m.items = append(m.items[:0:0], rows...)
	if m.SortedColumn() >= 0 {
		_ = m.Sort(m.sortColumn, m.sortOrder)
	}
	m.PublishRowsReset()
}

// Called by the TableView from SetModel and every time the model publishes a
// RowsReset event.
func (m *FileListModel) RowCount() int {
	return len(m.items)
}

// Called by the TableView when it needs the text to display for a given cell.
func (m *FileListModel) Value(row, col int) interface{} {
	item := m.items[row]
	switch col {
	case 0:
		return item.Name
	case 1:
		return item.Size
	case 2:
		return item.Uploaded
	}
	return ""
}
