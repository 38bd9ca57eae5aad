// Package sheet reads device batches from delimited planning sheets and
// writes plan results back out in the same shape.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mkrawiec/netplanner/internal/domain"
	"github.com/mkrawiec/netplanner/internal/ipcalc"
)

type columns struct {
	object   int
	category int
	device   int
	quantity int
	class    int
}

// ParseRows reads a device sheet. The delimiter is sniffed from the header
// line and column order is free; headers may use the Polish names from the
// original planning sheets. Blank lines are skipped and a missing quantity
// means one unit.
func ParseRows(r io.Reader) ([]domain.DeviceRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", domain.ErrInvalidInput)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header: %v", domain.ErrInvalidInput, err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.DeviceRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrInvalidInput, line, err)
		}
		if blankRecord(record) {
			continue
		}

		quantity, err := parseQuantity(cell(record, cols.quantity))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrInvalidInput, line, err)
		}

		rows = append(rows, domain.DeviceRow{
			Object:   cell(record, cols.object),
			Category: cell(record, cols.category),
			Device:   cell(record, cols.device),
			Quantity: quantity,
			Class:    domain.ParseAddressClass(cell(record, cols.class)),
		})
	}

	return rows, nil
}

// WriteAssignments renders the per-unit address plan with one line per
// physical device. Masks are written in dotted form; dynamically addressed
// units carry the dynamic marker in every address column.
func WriteAssignments(w io.Writer, rows []domain.AssignedRow) error {
	out := csv.NewWriter(w)
	out.Comma = ';'

	if err := out.Write([]string{"object", "category", "device", "address", "mask", "gateway", "ntp"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Object, row.Category, row.Device,
			domain.DynamicAddress, domain.DynamicAddress, domain.DynamicAddress, domain.DynamicAddress,
		}
		if row.Static {
			mask, err := ipcalc.DottedMask(row.Mask)
			if err != nil {
				return err
			}
			record[3] = row.Address.String()
			record[4] = mask
			record[5] = row.Gateway.String()
			record[6] = row.NTP.String()
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

// WriteEquipment renders the derived bill of equipment.
func WriteEquipment(w io.Writer, items []domain.EquipmentItem) error {
	out := csv.NewWriter(w)
	out.Comma = ';'

	if err := out.Write([]string{"name", "class", "quantity", "description"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := out.Write([]string{item.Name, item.Class, strconv.Itoa(item.Quantity), item.Description}); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

func mapColumns(header []string) (columns, error) {
	cols := columns{object: -1, category: -1, device: -1, quantity: -1, class: -1}
	for i, name := range header {
		switch normalizeHeader(name) {
		case "object", "obiekt":
			cols.object = i
		case "category", "kategoria":
			cols.category = i
		case "device", "urzadzenie", "urządzenie":
			cols.device = i
		case "quantity", "ilosc", "ilość":
			cols.quantity = i
		case "class", "klasa":
			cols.class = i
		}
	}
	if cols.object < 0 {
		return columns{}, fmt.Errorf("%w: sheet is missing an object column", domain.ErrInvalidInput)
	}
	if cols.class < 0 {
		return columns{}, fmt.Errorf("%w: sheet is missing a class column", domain.ErrInvalidInput)
	}

	return cols, nil
}

// normalizeHeader lowers the cell and strips the BOM spreadsheet exports
// glue onto the first header.
func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) >= bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func cell(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func blankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseQuantity(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad quantity %q", raw)
	}
	if n < 1 {
		return 1, nil
	}
	return n, nil
}
