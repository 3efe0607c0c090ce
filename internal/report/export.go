package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/vindevops99/telegram-chat-bot/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// utf8BOM keeps spreadsheet tools from mis-detecting the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportRows is the tabular form of one report, three sections in order:
// sales, expenses, totals. Pure; writeCSV only serializes it.
func ExportRows(sales []domain.SaleRecord, expenses []domain.ExpenseRecord, t Totals) [][]string {
	rows := [][]string{
		{"=== DOANH THU ==="},
		{"ID", "Tên khách hàng", "SĐT", "Dịch vụ", "Số tiền", "Ghi chú", "Ngày tạo"},
	}
	for _, s := range sales {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10), s.Name, s.Phone, s.Service,
			strconv.FormatInt(s.Amount, 10), s.Note, s.CreatedAt.Format(timestampLayout),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"=== CHI PHÍ ==="},
		[]string{"ID", "Loại chi phí", "Số tiền", "Ghi chú", "Ngày tạo"},
	)
	for _, e := range expenses {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10), e.Category, e.Amount.String(),
			e.Note, e.CreatedAt.Format(timestampLayout),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"=== TỔNG KẾT ==="},
		[]string{"Tổng doanh thu", domain.FormatVND(t.SaleTotal) + "đ"},
		[]string{"Tổng chi phí", domain.FormatVNDDec(t.ExpenseTotal) + "đ"},
		[]string{"Lãi/Lỗ", domain.FormatSigned(t.Profit()) + "đ"},
	)
	return rows
}

func writeCSV(dir string, sales []domain.SaleRecord, expenses []domain.ExpenseRecord, t Totals) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("report_%s.csv", uuid.NewString()))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	for _, row := range ExportRows(sales, expenses, t) {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
