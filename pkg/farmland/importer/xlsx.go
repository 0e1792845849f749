package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"cropmaster/entities"
)

// Result is the outcome of reading one land register sheet.
type Result struct {
	Lands   []entities.Farmland
	Skipped []int // 1-based sheet row numbers that could not be parsed
}

type columns struct{ nic, crop, location, area int }

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func mapHeader(head []string) (columns, error) {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	c := columns{
		nic:      findAny("nic", "owner", "farmer_nic"),
		crop:     findAny("crop_id", "crop", "cropid"),
		location: findAny("location", "village", "district"),
		area:     findAny("area", "area_acres", "acres"),
	}
	if c.crop == -1 {
		return c, fmt.Errorf("land register missing crop_id column. Found headers: %v", head)
	}
	return c, nil
}

// LoadXLSX reads parcels from sheet of the workbook at path. An empty sheet
// name selects the first sheet.
func LoadXLSX(path, sheet string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet != "" {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil {
			return nil, err
		}
		// a single-sheet register is read whatever its sheet is called
		if idx == -1 && len(f.GetSheetList()) > 1 {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
		if idx == -1 {
			sheet = ""
		}
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, errors.New("land register is empty")
	}
	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for i, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		rowNo := i + 2

		land := entities.Farmland{Location: get(cols.location)}
		if v := get(cols.crop); v != "" {
			crop, err := strconv.Atoi(v)
			if err != nil || crop < 0 {
				res.Skipped = append(res.Skipped, rowNo)
				continue
			}
			land.CropID = crop
		}
		if v := get(cols.area); v != "" {
			area, err := strconv.ParseFloat(v, 64)
			if err != nil || area < 0 {
				res.Skipped = append(res.Skipped, rowNo)
				continue
			}
			land.AreaAcres = area
		}
		if nic := get(cols.nic); nic != "" {
			land.NIC = &nic
		}
		res.Lands = append(res.Lands, land)
	}
	return res, nil
}
