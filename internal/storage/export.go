package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/bioproc/adsim/internal/sim"
)

// ExportCSV writes a trajectory as time,substrate,biomass,biogas rows.
func ExportCSV(w io.Writer, tr *sim.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "substrate", "biomass", "biogas"}); err != nil {
		return err
	}
	for i := range tr.T {
		row := []string{
			strconv.FormatFloat(tr.T[i], 'f', 6, 64),
			strconv.FormatFloat(tr.S[i], 'f', 6, 64),
			strconv.FormatFloat(tr.B[i], 'f', 6, 64),
			strconv.FormatFloat(tr.G[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type runExport struct {
	Meta      RunMeta   `json:"meta"`
	T         []float64 `json:"t"`
	Substrate []float64 `json:"substrate"`
	Biomass   []float64 `json:"biomass"`
	Biogas    []float64 `json:"biogas"`
}

// ExportJSON writes run metadata together with the sampled series.
func ExportJSON(w io.Writer, meta *RunMeta, tr *sim.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{
		Meta:      *meta,
		T:         tr.T,
		Substrate: tr.S,
		Biomass:   tr.B,
		Biogas:    tr.G,
	})
}
