package collab

import (
	"encoding/csv"
	"os"
	"time"
)

var fixedTime = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csv.NewReader(f).ReadAll()
}
